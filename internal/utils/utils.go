package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type TCPAddress struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func trimProtocolPrefix(addr string) string {
	addr = strings.TrimPrefix(addr, "tcp://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimPrefix(addr, "http://")
	return addr
}

func (t *TCPAddress) SetHostPort(host string, port int) {
	t.Host = trimProtocolPrefix(host)
	t.Port = port
}

func (t *TCPAddress) HTTPAddress() string {
	return fmt.Sprintf("http://%s:%d", t.Host, t.Port)
}

// This is the address string to use as arguments to net.Listen.
func (t *TCPAddress) BindString() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

func (t *TCPAddress) String() string {
	return t.BindString()
}

// Creates a logger writing to the given file, truncating it. An empty
// fileName logs to stderr.
func CreateFileLogger(setAsDefault bool, fileName string, prefix string) *log.Logger {
	var w io.Writer = os.Stderr
	if fileName != "" {
		f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			log.Fatalf("Failed to open/create log file: %s", fileName)
		}
		w = f
	}

	if setAsDefault {
		log.SetOutput(w)
		log.SetPrefix(prefix)
		return log.Default()
	}
	return log.New(w, prefix, log.Ltime|log.Lshortfile)
}

// A logger that drops everything, for tests and quiet runs.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

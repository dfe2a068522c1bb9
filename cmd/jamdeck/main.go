package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nrawrx3/jamdeck"
	"github.com/nrawrx3/jamdeck/catalog"
	cmdcommon "github.com/nrawrx3/jamdeck/cmd"
	"github.com/nrawrx3/jamdeck/console"
	"github.com/nrawrx3/jamdeck/internal/utils"
	"github.com/nrawrx3/jamdeck/server"
	"github.com/nrawrx3/jamdeck/table"
)

const usage = `usage: jamdeck [-conf FILE] COMMAND [ARGS]

commands:
  translate [-workers N] [-strict] [-o FILE] CATALOG   encode a catalog into records
  dump TABLE                                           print a table as YAML
  inspect TABLE                                        interactive lookups
  browse TABLE                                         full screen table browser
  serve [-host H] [-port P] TABLE                      HTTP lookup service
  fetch [-url URL] ID                                  query a running service
  random [-n N] [-seed S]                              print a random catalog
`

var envConfig *cmdcommon.EnvConfig
var logger *log.Logger

func RunApp() int {
	var configFile string
	flag.StringVar(&configFile, "conf", ".env", "dotenv config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	var err error
	envConfig, err = cmdcommon.LoadEnvConfig(configFile)
	if err != nil {
		log.Printf("Failed to load config: %s", err)
		return 2
	}
	logger = utils.CreateFileLogger(false, envConfig.LogFile, "jamdeck: ")

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	commands := map[string]func([]string) error{
		"translate": runTranslate,
		"dump":      runDump,
		"inspect":   runInspect,
		"browse":    runBrowse,
		"serve":     runServe,
		"fetch":     runFetch,
		"random":    runRandom,
	}

	command, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		flag.Usage()
		return 2
	}

	if err := command(args[1:]); err != nil {
		logger.Printf("%s: %s", args[0], err)
		return 1
	}
	return 0
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runTranslate(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	workers := fs.Int("workers", envConfig.Workers, "goroutines encoding records")
	strict := fs.Bool("strict", envConfig.Strict, "reject decks that are not permutations")
	output := fs.String("o", "-", "output file, - for stdout")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("expected one catalog file, got %d", fs.NArg())
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	translator := catalog.NewTranslator(&catalog.ConfigNewTranslator{
		Strict:  *strict,
		Workers: *workers,
		Logger:  logger,
	})

	// Records are buffered so that a failed run leaves no output behind.
	var buf bytes.Buffer
	count, err := translator.Translate(context.Background(), in, &buf)
	if err != nil {
		return err
	}

	tbl, err := table.New(buf.Bytes())
	if err != nil {
		return err
	}
	logger.Printf("translated %d configurations, digest %s", count, tbl.Digest())

	if *output == "-" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(*output, buf.Bytes(), 0644)
}

func loadTableArg(fs *flag.FlagSet) (*table.Table, error) {
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected one table file, got %d", fs.NArg())
	}
	return table.Load(fs.Arg(0))
}

type dumpEntry struct {
	ID                    int      `yaml:"id"`
	Deck                  string   `yaml:"deck"`
	Cards                 []string `yaml:"cards,flow"`
	BestKnownSolutionSize int      `yaml:"best_known_solution_size"`
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.Parse(args)

	tbl, err := loadTableArg(fs)
	if err != nil {
		return err
	}

	entries := make([]dumpEntry, 0, tbl.Count())
	for id := 0; id < tbl.Count(); id++ {
		config, err := tbl.Configuration(id)
		if err != nil {
			return err
		}
		entries = append(entries, dumpEntry{
			ID:                    id,
			Deck:                  config.Deck.String(),
			Cards:                 config.Deck.Names(),
			BestKnownSolutionSize: config.MinSolutionLength,
		})
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(entries); err != nil {
		return err
	}
	return encoder.Close()
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)

	tbl, err := loadTableArg(fs)
	if err != nil {
		return err
	}
	fmt.Printf("%d configurations, type help for commands\n", tbl.Count())
	return console.RunREPL(tbl, os.Stdout)
}

func runBrowse(args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	fs.Parse(args)

	tbl, err := loadTableArg(fs)
	if err != nil {
		return err
	}
	return console.Browse(tbl)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	host := fs.String("host", envConfig.ListenHost, "listen host")
	port := fs.Int("port", envConfig.ListenPort, "listen port")
	maxConnections := fs.Int("max-connections", envConfig.MaxConnections, "concurrent connection cap")
	fs.Parse(args)

	tbl, err := loadTableArg(fs)
	if err != nil {
		return err
	}

	var listenAddr utils.TCPAddress
	listenAddr.SetHostPort(*host, *port)

	s := server.NewServer(&server.ConfigNewServer{
		ListenAddr:     listenAddr,
		Table:          tbl,
		MaxConnections: *maxConnections,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %s", err)
		}
	}()

	return s.RunServer()
}

func runFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	url := fs.String("url", envConfig.ServerURL, "lookup service base URL")
	fs.Parse(args)

	client := server.NewClient(*url, 5*time.Second)
	ctx := context.Background()

	if fs.NArg() == 0 {
		summary, err := client.FetchSummary(ctx)
		if err != nil {
			return err
		}
		return utils.WriteJsonWithNewline(os.Stdout, &summary)
	}

	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("bad id %q", fs.Arg(0))
	}
	msg, err := client.FetchConfiguration(ctx, id)
	if err != nil {
		return err
	}
	return utils.WriteJsonWithNewline(os.Stdout, &msg)
}

func runRandom(args []string) error {
	fs := flag.NewFlagSet("random", flag.ExitOnError)
	count := fs.Int("n", 10, "number of configurations")
	seed := fs.Int64("seed", 0, "random seed, 0 for a time based seed")
	fs.Parse(args)

	if *seed != 0 {
		rand.Seed(*seed)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintf(w, "# %d random configurations\n", *count)
	for i := 0; i < *count; i++ {
		config := jamdeck.Configuration{
			ID:                strconv.Itoa(i + 1),
			Deck:              jamdeck.NewShuffledDeck(),
			MinSolutionLength: jamdeck.MinSolutionLength + rand.Intn(jamdeck.MaxSolutionLength-jamdeck.MinSolutionLength+1),
		}
		fmt.Fprintln(w, catalog.FormatLine(config))
	}
	return nil
}

func main() {
	os.Exit(RunApp())
}

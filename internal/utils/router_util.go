package utils

import (
	"log"
	"reflect"
	"runtime"
	"strings"

	"github.com/gorilla/mux"
)

// Logs one line per route: methods, path template and handler name.
func RoutesSummary(r *mux.Router, logger *log.Logger) {
	err := r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ANY"}
		}
		handlerName := "-"
		if v := reflect.ValueOf(route.GetHandler()); v.Kind() == reflect.Func {
			handlerName = runtime.FuncForPC(v.Pointer()).Name()
		}
		logger.Printf("ROUTE: %s %s -> %s", strings.Join(methods, ","), pathTemplate, handlerName)
		return nil
	})

	if err != nil {
		logger.Println(err)
	}
}

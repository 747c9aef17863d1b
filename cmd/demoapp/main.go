// Command demoapp starts the fixture web application the automation
// packages are tested against.
// Usage: go run ./cmd/demoapp [addr]
// Default addr: :9990
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/atheor/gowebtest/internal/demoapp"
	"github.com/atheor/gowebtest/internal/logging"
)

func main() {
	cfg := demoapp.DefaultConfig()

	if len(os.Args) > 1 {
		cfg.ListenAddr = os.Args[1]
	}

	app := demoapp.New(cfg, logging.NewStdoutLogger("DemoApp"))

	fmt.Printf("Demo app listening on %s\n", cfg.ListenAddr)
	fmt.Println("Pages: /login /products /overlay /dynamic /slow")
	fmt.Println("API:   /api/status /api/pets /api/flaky?fail=n")

	if err := app.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// Command h1dump parses a raw HTTP/1.x message and prints it as JSON.
//
//	h1dump [-response] [-text] [-bare-lf] [-no-trailer] [-max-headers n] [file]
//
// The message is read from the file, or from stdin if none is given.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/indigo-web/h1span/config"
	"github.com/indigo-web/h1span/internal/dump"
)

func main() {
	var (
		response   = flag.Bool("response", false, "parse a response instead of a request")
		text       = flag.Bool("text", false, "print the normalized message instead of JSON")
		bareLF     = flag.Bool("bare-lf", false, "accept lines terminated by a bare LF")
		noTrailer  = flag.Bool("no-trailer", false, "leave the chunked trailer in the extra data")
		maxHeaders = flag.Int("max-headers", config.Default().Headers.MaxNumber, "maximal number of headers")
	)
	flag.Parse()

	cfg := config.Default()
	cfg.Lenient.BareLF = *bareLF
	cfg.Chunked.ConsumeTrailer = !*noTrailer
	cfg.Headers.MaxNumber = *maxHeaders

	data, err := read(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	parse := dump.Request
	if *response {
		parse = dump.Response
	}

	msg, err := parse(cfg, data)
	if err != nil {
		log.Fatalf("h1dump: %s", err)
	}

	if *text {
		_, err = io.WriteString(os.Stdout, msg.String())
	} else {
		err = dump.JSON(os.Stdout, msg)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func read(path string) ([]byte, error) {
	if len(path) == 0 || path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

// Command decode decompresses a neuralink-encoded WAV file. With no
// arguments it reads standard input and writes standard output; with two
// arguments it treats them as input and output file paths.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sitmo/NeuroMasterBlaster/internal/wav"
	"github.com/sitmo/NeuroMasterBlaster/neuralink"
)

func init() {
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = lv
	}
	zerolog.SetGlobalLevel(level)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [inputFile outputFile]\n", os.Args[0])
}

func main() {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout

	switch len(os.Args) {
	case 1:
		// stdin/stdout
	case 3:
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Error().Err(err).Msg("open input")
			os.Exit(1)
		}
		defer f.Close()
		in = f

		o, err := os.Create(os.Args[2])
		if err != nil {
			log.Error().Err(err).Msg("create output")
			os.Exit(1)
		}
		defer o.Close()
		out = o
	default:
		usage()
		os.Exit(1)
	}

	if err := run(out, in); err != nil {
		log.Error().Err(err).Msg("decode failed")
		os.Exit(1)
	}
}

func run(out io.Writer, in io.Reader) error {
	header, err := wav.ReadHeader(in)
	if err != nil {
		return errors.Wrap(err, "read wav header")
	}
	if err := header.Validate(); err != nil {
		return errors.Wrap(err, "malformed container")
	}
	if err := wav.WriteHeader(out, header); err != nil {
		return errors.Wrap(err, "write wav header")
	}

	log.Info().Msg("header validated, decoding payload")
	if err := neuralink.Decode(out, in); err != nil {
		return errors.Wrap(err, "decode payload")
	}
	log.Debug().Msg("decode complete")
	return nil
}

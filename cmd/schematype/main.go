package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/loader"
	"github.com/reoring/schematype/translate"
	"github.com/reoring/schematype/typeexpr"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "translate":
		translateCmd(os.Args[2:])
	case "watch":
		watchCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schematype CLI\n\nUsage:\n  schematype translate -schema file.json [-path a.b.c] [-no-cache]\n  schematype watch -schema file.json [-path a.b.c]\n\nNotes:\n  - Key path segments are dot-separated; '#' names an array element.\n  - watch reprints the translation whenever the schema file changes.")
}

func translateCmd(args []string) {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	var schemaPath string
	var keyPath string
	var noCache bool
	fs.StringVar(&schemaPath, "schema", "", "schema file to translate (.json/.yaml)")
	fs.StringVar(&keyPath, "path", "", "dot-separated key path to a nested subschema")
	fs.BoolVar(&noCache, "no-cache", false, "bypass the translation cache")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	expr, err := run(schemaPath, splitPath(keyPath), noCache)
	if err != nil {
		fatalf("translate: %v", err)
	}
	fmt.Println(typeexpr.Sprint(expr))
}

func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var schemaPath string
	var keyPath string
	fs.StringVar(&schemaPath, "schema", "", "schema file to watch")
	fs.StringVar(&keyPath, "path", "", "dot-separated key path to a nested subschema")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	path := splitPath(keyPath)
	cache := translate.NewCache(loader.FileMarker)

	reprint := func() {
		expr, err := runWithCache(schemaPath, path, cache)
		if err != nil {
			logger.Error().Err(err).Msg("translation failed")
			return
		}
		fmt.Println(typeexpr.Sprint(expr))
	}
	reprint()

	w, err := loader.NewWatcher(logger)
	if err != nil {
		fatalf("watch: %v", err)
	}
	if err := w.Add(schemaPath); err != nil {
		fatalf("watch: %v", err)
	}
	w.OnChange(func(id schematype.Identity) {
		cache.Invalidate(id)
		reprint()
	})
	w.Start()
	defer w.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}

func run(schemaPath string, path []string, noCache bool) (typeexpr.Expr, error) {
	doc, err := loader.LoadFile(schemaPath)
	if err != nil {
		return nil, err
	}
	reg := loader.NewRegistry()
	return translate.Translate(doc.Node,
		translate.WithIdentity(doc.Identity),
		translate.WithKeyPath(path...),
		translate.WithBypass(noCache),
		translate.WithExtern(reg.Extern(baseDirOf(doc))),
	)
}

func runWithCache(schemaPath string, path []string, cache *translate.Cache) (typeexpr.Expr, error) {
	doc, err := loader.LoadFile(schemaPath)
	if err != nil {
		return nil, err
	}
	reg := loader.NewRegistry()
	return translate.Translate(doc.Node,
		translate.WithIdentity(doc.Identity),
		translate.WithKeyPath(path...),
		translate.WithCache(cache),
		translate.WithExtern(reg.Extern(baseDirOf(doc))),
	)
}

func baseDirOf(doc loader.Document) string {
	src := doc.Identity.Source
	if i := strings.LastIndexByte(src, '/'); i >= 0 {
		return src[:i]
	}
	return "."
}

func splitPath(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

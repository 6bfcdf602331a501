// Package main is the entry point for the htmlvet command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/htmlvet/internal/config"
	"github.com/dshills/htmlvet/internal/inspect"
	"github.com/dshills/htmlvet/internal/lint"
	"github.com/dshills/htmlvet/internal/notify"
	"github.com/dshills/htmlvet/internal/project"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

type options struct {
	root    string
	prefs   string
	worker  string
	watch   bool
	verbose bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, files := parseFlags()

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no files to lint")
		return 2
	}

	root, err := filepath.Abs(opts.root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: resolving project root: %v\n", err)
		return 2
	}

	prefsPath := opts.prefs
	if prefsPath == "" {
		prefsPath = filepath.Join(root, config.PrefsFileName)
	}
	store, err := config.NewPrefsStore(prefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	prefs := store.Prefs()

	backend, err := lint.NewCommandBackend(workerCommand(prefs, opts.worker),
		lint.WithWorkerTimeout(time.Duration(prefs.WorkerTimeoutSeconds)*time.Second))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionOpts := []project.SessionOption{}
	if opts.watch {
		sessionOpts = append(sessionOpts, project.WithNotifier(notify.New(notify.WithAsync(16))))
	}
	session := project.NewSession(root, sessionOpts...)
	defer session.Close()

	reloader := project.NewReloader(session)
	reloader.Reload(ctx)
	reloader.Wait()

	dispatcher := lint.NewDispatcher(session, session, backend)

	registry := inspect.NewRegistry()
	err = registry.Register(inspect.Inspector{
		Name:    "htmlvet",
		Scan:    dispatcher.Scan,
		Enabled: func(string) bool { return store.Prefs().Enabled },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if !prefs.Enabled && !opts.watch {
		fmt.Fprintln(os.Stderr, "htmlvet is disabled by preferences")
		return 0
	}

	hadErrors := lintFiles(ctx, session, registry, files, opts.verbose)

	if opts.watch {
		return watchLoop(ctx, session, reloader, registry, store, backend, opts, files)
	}

	if hadErrors {
		return 1
	}
	return 0
}

// lintFiles scans each file and prints its diagnostics. It reports
// whether any error-severity diagnostic was produced.
func lintFiles(ctx context.Context, session *project.Session, registry *inspect.Registry, files []string, verbose bool) bool {
	hadErrors := false

	for _, file := range files {
		path, err := filepath.Abs(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", file, err)
			hadErrors = true
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", file, err)
			hadErrors = true
			continue
		}

		session.SetActivePath(path)

		result, err := registry.Run(ctx, "htmlvet", string(data), path)
		if err != nil {
			if errors.Is(err, lint.ErrStaleResult) {
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", file, err)
			hadErrors = true
			continue
		}

		if result == nil {
			if verbose {
				fmt.Printf("%s: ok\n", file)
			}
			continue
		}

		for _, d := range result.Errors {
			fmt.Println(lint.FormatDiagnosticWithLocation(file, d))
			if d.Severity == lint.SeverityError {
				hadErrors = true
			}
		}
	}

	return hadErrors
}

// watchLoop keeps the process alive, re-linting when the project
// configuration or the tool preferences change, until interrupted.
func watchLoop(ctx context.Context, session *project.Session, reloader *project.Reloader, registry *inspect.Registry, store *config.PrefsStore, backend *lint.CommandBackend, opts options, files []string) int {
	prefsChanged := func(context.Context) {
		if err := store.Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		prefs := store.Prefs()
		if err := backend.Reconfigure(workerCommand(prefs, opts.worker),
			time.Duration(prefs.WorkerTimeoutSeconds)*time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		session.Notifier().Notify(notify.Event{
			Type:       notify.EventPreferenceChanged,
			Root:       session.Root(),
			Generation: session.Generation(),
		})
	}

	router := project.NewRouter(session, reloader, project.WithPrefsPath(store.Path(), prefsChanged))
	watcher, err := project.NewWatcher(session, router)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer watcher.Close()

	if err := watcher.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	relint := make(chan struct{}, 1)
	requestRelint := func(notify.Event) {
		select {
		case relint <- struct{}{}:
		default:
		}
	}
	relintSub := session.Notifier().SubscribeType(notify.EventRelint, requestRelint)
	defer relintSub.Unsubscribe()
	prefsSub := session.Notifier().SubscribeType(notify.EventPreferenceChanged, requestRelint)
	defer prefsSub.Unsubscribe()

	fmt.Fprintln(os.Stderr, "watching for configuration changes (Ctrl-C to stop)")

	for {
		select {
		case <-ctx.Done():
			return 0
		case <-relint:
			lintFiles(ctx, session, registry, files, opts.verbose)
		}
	}
}

// workerCommand resolves the effective worker command: the -worker flag
// overrides the preferences file.
func workerCommand(prefs config.Prefs, override string) []string {
	if override != "" {
		return strings.Fields(override)
	}
	return prefs.WorkerCommand
}

func parseFlags() (options, []string) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.root, "root", ".", "Project root directory")
	flag.StringVar(&opts.root, "r", ".", "Project root directory (shorthand)")
	flag.StringVar(&opts.prefs, "prefs", "", "Path to preferences file")
	flag.StringVar(&opts.worker, "worker", "", "Lint worker command (overrides preferences)")
	flag.BoolVar(&opts.watch, "watch", false, "Keep running and re-lint on config changes")
	flag.BoolVar(&opts.watch, "w", false, "Keep running and re-lint on config changes (shorthand)")
	flag.BoolVar(&opts.verbose, "verbose", false, "Report clean files too")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: htmlvet [options] <file>...\n\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("htmlvet %s\n", version)
		os.Exit(0)
	}

	return opts, flag.Args()
}

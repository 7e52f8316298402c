// Package main is a minimal interactive host for the reverso engine:
// a line-oriented text editor with undo/redo and named checkpoints.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/reverso"
	"github.com/dshills/reverso/document"
	"github.com/dshills/reverso/history"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to TOML config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	cfg := reverso.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = reverso.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	opts := []reverso.Option{reverso.WithConfig(cfg)}
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, reverso.WithLogger(logger))
	}

	doc := document.New()
	eng := reverso.New(doc, opts...)

	fmt.Println("revedit - type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if quit := dispatch(eng, doc, scanner.Text()); quit {
			break
		}
	}
	return 0
}

func dispatch(eng *reverso.Engine[*document.Document], doc *document.Document, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit":
		return true
	case "help":
		printHelp()
	case "p", "print":
		fmt.Printf("%q (%d chars)\n", doc.Text(), doc.Len())
	case "a", "append":
		execute(eng, &document.Insert{At: doc.Len(), Text: restN(line, 1)})
	case "i", "insert":
		at, ok := intArg(args, 0)
		if !ok {
			fmt.Println("usage: i <at> <text>")
			break
		}
		execute(eng, &document.Insert{At: at, Text: restN(line, 2)})
	case "d", "delete":
		at, ok1 := intArg(args, 0)
		n, ok2 := intArg(args, 1)
		if !ok1 || !ok2 {
			fmt.Println("usage: d <at> <count>")
			break
		}
		execute(eng, &document.Delete{At: at, Count: n})
	case "u", "undo":
		info, err := eng.Undo()
		if errors.Is(err, reverso.ErrNothingToUndo) {
			fmt.Println("nothing to undo")
		} else if err != nil {
			fmt.Printf("undo failed: %v\n", err)
		} else {
			fmt.Printf("undid: %s\n", info.Label)
		}
	case "r", "redo":
		info, err := eng.Redo()
		if errors.Is(err, reverso.ErrNothingToRedo) {
			fmt.Println("nothing to redo")
		} else if err != nil {
			fmt.Printf("redo failed: %v\n", err)
		} else {
			fmt.Printf("redid: %s\n", info.Label)
		}
	case "h", "hist":
		for _, info := range eng.UndoHistory() {
			fmt.Printf("  %s  %s\n", info.Timestamp.Format("15:04:05"), info.Label)
		}
	case "save":
		if len(args) != 1 {
			fmt.Println("usage: save <name>")
			break
		}
		info, err := eng.Checkpoint(args[0])
		if err != nil {
			fmt.Printf("save failed: %v\n", err)
		} else {
			fmt.Printf("saved %q (seq %d, %d bytes)\n", info.Name, info.Seq, info.Size)
		}
	case "load":
		if len(args) != 1 {
			fmt.Println("usage: load <name>")
			break
		}
		if err := eng.RestoreCheckpoint(args[0]); err != nil {
			fmt.Printf("load failed: %v\n", err)
		}
	case "rm":
		if len(args) != 1 {
			fmt.Println("usage: rm <name>")
			break
		}
		if err := eng.DeleteCheckpoint(args[0]); err != nil {
			fmt.Printf("rm failed: %v\n", err)
		}
	case "ls":
		for name := range eng.CheckpointNames() {
			fmt.Printf("  %s\n", name)
		}
	default:
		fmt.Printf("unknown command %q; type 'help'\n", cmd)
	}
	return false
}

func execute(eng *reverso.Engine[*document.Document], op history.Operation[*document.Document]) {
	out, err := eng.Execute(op)
	if err != nil {
		fmt.Printf("failed: %v\n", err)
		return
	}
	if out == reverso.NoEffect {
		fmt.Println("no effect")
	}
}

// restN returns everything after the first n space-separated words.
func restN(line string, n int) string {
	fields := strings.SplitN(strings.TrimSpace(line), " ", n+1)
	if len(fields) <= n {
		return ""
	}
	return fields[n]
}

func intArg(args []string, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func printHelp() {
	fmt.Print(`commands:
  p                 print document
  a <text>          append text at end
  i <at> <text>     insert text at rune offset
  d <at> <count>    delete count runes at offset
  u / r             undo / redo
  h                 list undo history
  save <name>       checkpoint current state
  load <name>       restore checkpoint (clears history)
  rm <name>         delete checkpoint
  ls                list checkpoints
  q                 quit
`)
}

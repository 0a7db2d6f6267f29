// Command ned is a line editor in the manner of ed(1). It wires the
// interpreter core to a terminal: reads command lines from stdin, echoes
// the interpreter's output and renders the error markers.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/perombra/ned/internal/buffer"
	"github.com/perombra/ned/internal/config"
	"github.com/perombra/ned/internal/interp"
)

var (
	promptFlag = flag.String("p", "", "set the command prompt and show it")
	silentFlag = flag.Bool("s", false, "suppress byte counts and diagnostics")
	rcFlag     = flag.String("rc", defaultRCPath(), "path to the rc file")
	initFlag   = flag.Bool("init", false, "write a default rc file and exit")
)

func defaultRCPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nedrc"
	}
	return filepath.Join(home, ".nedrc")
}

func main() {
	flag.Parse()
	log.SetOutput(io.Discard)

	if *initFlag {
		if err := config.WriteDefault(*rcFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*rcFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *promptFlag != "" {
		cfg.Prompt = *promptFlag
	}
	if *silentFlag {
		cfg.Silent = true
	}

	buf := buffer.New()
	if path := flag.Arg(0); path != "" {
		n, err := buf.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "?")
		} else if !cfg.Silent {
			fmt.Println(n)
		}
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	sess := interp.New(buf,
		interp.WithShell(cfg.Shell),
		interp.WithVerbose(cfg.Verbose),
		interp.WithScroll(cfg.Scroll),
		interp.WithPrompt(interactive && *promptFlag != ""),
	)
	go handleSignals(buf)

	in := bufio.NewScanner(os.Stdin)
	for {
		if sess.PromptVisible() {
			fmt.Print(cfg.Prompt)
		}
		if !in.Scan() {
			// EOF behaves like q: a modified buffer gets one warning
			res := sess.Submit("q")
			printOutput(res.Output)
			if res.Ended || !interactive {
				break
			}
			continue
		}
		res := sess.Submit(in.Text())
		printOutput(res.Output)
		if res.Ended {
			break
		}
	}
}

func printOutput(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}

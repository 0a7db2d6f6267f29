//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/perombra/ned/internal/buffer"
)

const hangupFile = "ned.hup"

func handleSignals(buf *buffer.Buffer) {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, unix.SIGHUP, unix.SIGINT, unix.SIGQUIT)
	for sig := range sigch {
		switch sig {
		case unix.SIGHUP:
			if buf.Modified() {
				buf.SaveTo(hangupFile, false)
			}
			os.Exit(1)
		case unix.SIGINT:
			fmt.Fprintln(os.Stderr, "?")
		case unix.SIGQUIT:
			// ignore
		}
	}
}

// Command motiflow provides a CLI for DNA motif analysis.
//
// Usage:
//
//	motiflow [command] [options]
//
// Commands:
//
//	scan        Scan FASTA sequences for motif occurrences
//	compare     Compare two motif collections
//	consensus   Show consensus and statistics of motifs
//	convert     Parse and rewrite a MEME file
//	version     Show version information
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "scan":
		scanCmd(os.Args[2:])
	case "compare":
		compareCmd(os.Args[2:])
	case "consensus":
		consensusCmd(os.Args[2:])
	case "convert":
		convertCmd(os.Args[2:])
	case "version":
		versionCmd()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Motiflow - DNA Motif Analysis Tool

Usage:
  motiflow <command> [options]

Commands:
  scan       Scan FASTA sequences for motif occurrences
  compare    Compare two motif collections
  consensus  Show consensus and statistics of motifs
  convert    Parse and rewrite a MEME file
  version    Show version information
  help       Show this help message

Use "motiflow <command> -h" for more information about a command.`)
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

package main

import (
	"fmt"
	"os"

	"github.com/motiflow/motiflow-go/pkg/motiflow"
)

func readMotifFile(path string) (*motiflow.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return motiflow.ReadMEME(string(data), 0)
}

func scanCmd(args []string) {
	fs := newFlagSet("scan")
	motifFile := fs.String("motifs", "", "MEME file with motifs to scan for")
	fastaFile := fs.String("fasta", "", "FASTA file with sequences to scan")
	seq := fs.String("seq", "", "Sequence string to scan instead of a file")
	threshold := fs.Float64("threshold", 1e-4, "Maximum hit p-value")
	forwardOnly := fs.Bool("forward-only", false, "Skip the reverse strand")
	threads := fs.Int("threads", 1, "Worker threads for the per-motif loop")
	fs.Parse(args)

	if *motifFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -motifs is required")
		fs.Usage()
		os.Exit(1)
	}
	if *fastaFile == "" && *seq == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -fasta or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	doc, err := readMotifFile(*motifFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading motifs: %v\n", err)
		os.Exit(1)
	}

	var names []string
	var sequences []string
	if *fastaFile != "" {
		records, err := motiflow.ReadFASTA(*fastaFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		for _, rec := range records {
			names = append(names, rec.ID)
			sequences = append(sequences, rec.Bases)
		}
	} else {
		names = []string{"sequence"}
		sequences = []string{*seq}
	}

	opts := motiflow.DefaultScanOptions()
	opts.Threshold = *threshold
	opts.ReverseComplement = !*forwardOnly
	opts.Threads = *threads

	results, err := motiflow.Fimo(doc.Motifs(), sequences, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("motif\tsequence\tstart\tend\tstrand\tscore\tp-value")
	for _, mr := range results {
		for _, h := range mr.Hits {
			fmt.Printf("%s\t%s\t%d\t%d\t%s\t%.4f\t%.4g\n",
				mr.Motif, names[h.SequenceIndex], h.Start, h.End,
				h.StrandString(), h.Score, h.PValue)
		}
	}
}

func compareCmd(args []string) {
	fs := newFlagSet("compare")
	queryFile := fs.String("queries", "", "MEME file with query motifs")
	targetFile := fs.String("targets", "", "MEME file with target motifs")
	forwardOnly := fs.Bool("forward-only", false, "Skip reverse-complement targets")
	rigorous := fs.Bool("rigorous", false, "Use convolution p-values instead of the placeholder")
	threads := fs.Int("threads", 1, "Worker threads for the per-query loop")
	fs.Parse(args)

	if *queryFile == "" || *targetFile == "" {
		fmt.Fprintln(os.Stderr, "Error: Both -queries and -targets are required")
		fs.Usage()
		os.Exit(1)
	}

	queries, err := readMotifFile(*queryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading queries: %v\n", err)
		os.Exit(1)
	}
	targets, err := readMotifFile(*targetFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading targets: %v\n", err)
		os.Exit(1)
	}

	opts := motiflow.DefaultCompareOptions()
	opts.ReverseComplement = !*forwardOnly
	opts.Threads = *threads
	if *rigorous {
		opts.PValueMode = motiflow.PValueConvolution
	}

	m, err := motiflow.Tomtom(queries.Motifs(), targets.Motifs(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing: %v\n", err)
		os.Exit(1)
	}

	queryNames := queries.Names()
	targetNames := targets.Names()

	fmt.Println("query\ttarget\toffset\toverlap\tstrand\tscore\tp-value")
	for i, qn := range queryNames {
		for j, tn := range targetNames {
			strand := "+"
			if m.Strands[i][j] == 1 {
				strand = "-"
			}
			fmt.Printf("%s\t%s\t%d\t%d\t%s\t%.4f\t%.4g\n",
				qn, tn, m.Offsets[i][j], m.Overlaps[i][j], strand,
				m.Scores[i][j], m.PValues[i][j])
		}
	}
}

func consensusCmd(args []string) {
	fs := newFlagSet("consensus")
	motifFile := fs.String("motifs", "", "MEME file with motifs")
	force := fs.Bool("force", false, "Break consensus ties instead of failing")
	fs.Parse(args)

	if *motifFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -motifs is required")
		fs.Usage()
		os.Exit(1)
	}

	doc, err := readMotifFile(*motifFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading motifs: %v\n", err)
		os.Exit(1)
	}

	for _, m := range doc.Motifs() {
		consensus, err := motiflow.Characters(m.PWM, *force)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", m.Name, err)
			continue
		}
		stats := motiflow.Stats(m.PWM)
		fmt.Printf("%s\t%s\tw=%d\tIC=%.2f bits\tGC=%.1f%%\n",
			m.Name, consensus, stats.Width, stats.TotalInfo, stats.GCContent*100)
	}
}

func convertCmd(args []string) {
	fs := newFlagSet("convert")
	motifFile := fs.String("motifs", "", "MEME file to parse and rewrite")
	maxMotifs := fs.Int("max", 0, "Stop after this many motifs (0 = all)")
	fs.Parse(args)

	if *motifFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -motifs is required")
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*motifFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	doc, err := motiflow.ReadMEME(string(data), *maxMotifs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(motiflow.WriteMEME(doc))
}

func versionCmd() {
	fmt.Println(motiflow.Info())
}

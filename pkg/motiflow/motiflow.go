// Package motiflow provides a high-level API for DNA motif analysis.
//
// This package exposes the core engines through a simple surface: motif
// scanning (Fimo), motif-to-motif comparison (Tomtom), one-hot encoding,
// consensus extraction, and MEME text I/O.
//
// Example usage:
//
//	doc, err := motiflow.ReadMEME(text, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := motiflow.Fimo(doc.Motifs(), []string{"ACGTACGT"}, motiflow.DefaultScanOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, hit := range results[0].Hits {
//	    fmt.Printf("%d-%d %s p=%g\n", hit.Start, hit.End, hit.StrandString(), hit.PValue)
//	}
package motiflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/motiflow/motiflow-go/internal/alphabet"
	"github.com/motiflow/motiflow-go/internal/fimo"
	"github.com/motiflow/motiflow-go/internal/meme"
	"github.com/motiflow/motiflow-go/internal/motif"
	"github.com/motiflow/motiflow-go/internal/tomtom"
)

// Re-export types for convenience
type (
	PWM            = motif.PWM
	LogPWM         = motif.LogPWM
	Motif          = motif.Motif
	MotifStats     = motif.Stats
	OneHot         = alphabet.OneHot
	Hit            = fimo.Hit
	MotifResult    = fimo.MotifResult
	ScanOptions    = fimo.Options
	CompareOptions = tomtom.Options
	PValueMode     = tomtom.PValueMode
	Matrices       = tomtom.Matrices
	Document       = meme.Document
)

// P-value modes for Tomtom.
const (
	PValuePlaceholder = tomtom.PValuePlaceholder
	PValueConvolution = tomtom.PValueConvolution
)

// Version of the library.
const Version = "1.0.0"

// Info returns a version string.
func Info() string {
	return "motiflow " + Version
}

// NewPWM validates a 4 x w probability matrix (rows A, C, G, T).
func NewPWM(rows [][]float64) (PWM, error) {
	return motif.New(rows)
}

// OneHotEncode encodes a DNA sequence as a 4 x L binary matrix. N yields
// an all-zero column; any other non-alphabet symbol is an error.
func OneHotEncode(seq string) (OneHot, error) {
	return alphabet.Encode(seq)
}

// ReverseComplement returns the reverse-complement one-hot encoding.
func ReverseComplement(h OneHot) OneHot {
	return h.ReverseComplement()
}

// Characters returns the per-column argmax consensus of a PWM. Ties fail
// unless force is set.
func Characters(p PWM, force bool) (string, error) {
	return motif.Consensus(p, force)
}

// Stats summarizes a motif's width, information content and GC content.
func Stats(p PWM) MotifStats {
	return motif.ComputeStats(p)
}

// DefaultScanOptions returns the standard Fimo configuration.
func DefaultScanOptions() ScanOptions {
	return fimo.DefaultOptions()
}

// Fimo scans sequences for motif occurrences above a p-value threshold.
func Fimo(motifs []Motif, sequences []string, opts ScanOptions) ([]MotifResult, error) {
	return fimo.Scan(motifs, sequences, opts)
}

// DefaultCompareOptions returns the standard Tomtom configuration.
func DefaultCompareOptions() CompareOptions {
	return tomtom.DefaultOptions()
}

// Tomtom compares query motifs against target motifs.
func Tomtom(queries, targets []Motif, opts CompareOptions) (*Matrices, error) {
	return tomtom.Compare(queries, targets, opts)
}

// NewDocument returns an empty motif document.
func NewDocument() *Document {
	return meme.NewDocument()
}

// ReadMEME parses motifs from MEME text. maxMotifs > 0 caps the number
// of motifs read; 0 reads everything.
func ReadMEME(text string, maxMotifs int) (*Document, error) {
	return meme.Read(text, maxMotifs)
}

// WriteMEME renders motifs as MEME text.
func WriteMEME(doc *Document) string {
	return meme.Write(doc)
}

// FastaRecord is one sequence from a FASTA file.
type FastaRecord struct {
	ID          string
	Description string
	Bases       string
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]FastaRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader. Bases are concatenated
// as-is; validation happens when a record is encoded or scanned.
func ParseFASTA(r io.Reader) ([]FastaRecord, error) {
	records := make([]FastaRecord, 0)
	scanner := bufio.NewScanner(r)

	var currentID, currentDesc string
	var currentBases strings.Builder

	flush := func() {
		if currentBases.Len() > 0 {
			records = append(records, FastaRecord{
				ID:          currentID,
				Description: currentDesc,
				Bases:       currentBases.String(),
			})
			currentBases.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			flush()

			header := line[1:]
			parts := strings.SplitN(header, " ", 2)
			currentID = parts[0]
			if len(parts) > 1 {
				currentDesc = parts[1]
			} else {
				currentDesc = ""
			}
		} else {
			currentBases.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return records, nil
}

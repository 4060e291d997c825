package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/motiflow/motiflow-go/pkg/motiflow"
)

// ScanRequest represents a motif scanning request. Motifs map names to
// 4 x w probability matrices (rows A, C, G, T).
type ScanRequest struct {
	Motifs            map[string][][]float64 `json:"motifs"`
	MotifOrder        []string               `json:"motif_order"`
	Sequences         []string               `json:"sequences"`
	Threshold         float64                `json:"threshold"`
	ReverseComplement *bool                  `json:"reverse_complement"`
}

// ScanHit is one reported motif occurrence. Reverse-strand positions are
// in the reverse-complement coordinate frame.
type ScanHit struct {
	SequenceIndex int     `json:"sequence_idx"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
	Strand        string  `json:"strand"`
	Score         float64 `json:"score"`
	PValue        float64 `json:"p_value"`
}

// ScanMotifResult is the hit list of one motif.
type ScanMotifResult struct {
	Motif string    `json:"motif_name"`
	Hits  []ScanHit `json:"hits"`
}

// ScanResponse represents the response for motif scanning.
type ScanResponse struct {
	Results []ScanMotifResult `json:"results"`
}

// ScanHandler handles motif scanning requests.
func ScanHandler(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	motifs, err := motifList(req.Motifs, req.MotifOrder)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	opts := motiflow.DefaultScanOptions()
	if req.Threshold > 0 {
		opts.Threshold = req.Threshold
	}
	if req.ReverseComplement != nil {
		opts.ReverseComplement = *req.ReverseComplement
	}

	results, err := motiflow.Fimo(motifs, req.Sequences, opts)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	resp := ScanResponse{Results: make([]ScanMotifResult, 0, len(results))}
	for _, mr := range results {
		out := ScanMotifResult{Motif: mr.Motif, Hits: make([]ScanHit, 0, len(mr.Hits))}
		for _, h := range mr.Hits {
			out.Hits = append(out.Hits, ScanHit{
				SequenceIndex: h.SequenceIndex,
				Start:         h.Start,
				End:           h.End,
				Strand:        h.StrandString(),
				Score:         h.Score,
				PValue:        h.PValue,
			})
		}
		resp.Results = append(resp.Results, out)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// motifList builds an ordered motif slice from a named matrix map. An
// explicit order list wins (names missing from the map are skipped);
// otherwise the names are sorted so the order is deterministic.
func motifList(matrices map[string][][]float64, order []string) ([]motiflow.Motif, error) {
	if len(order) == 0 {
		order = make([]string, 0, len(matrices))
		for name := range matrices {
			order = append(order, name)
		}
		sortStrings(order)
	}

	motifs := make([]motiflow.Motif, 0, len(order))
	for _, name := range order {
		rows, ok := matrices[name]
		if !ok {
			continue
		}
		pwm, err := motiflow.NewPWM(rows)
		if err != nil {
			return nil, err
		}
		motifs = append(motifs, motiflow.Motif{Name: name, PWM: pwm})
	}
	return motifs, nil
}

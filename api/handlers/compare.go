package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/motiflow/motiflow-go/pkg/motiflow"
)

// CompareRequest represents a motif comparison request.
type CompareRequest struct {
	Queries           map[string][][]float64 `json:"queries"`
	QueryOrder        []string               `json:"query_order"`
	Targets           map[string][][]float64 `json:"targets"`
	TargetOrder       []string               `json:"target_order"`
	ReverseComplement *bool                  `json:"reverse_complement"`
	RigorousPValues   bool                   `json:"rigorous_p_values"`
}

// CompareResponse represents the response for motif comparison. All
// matrices are indexed [query][target] in the listed order.
type CompareResponse struct {
	QueryNames  []string    `json:"query_names"`
	TargetNames []string    `json:"target_names"`
	PValues     [][]float64 `json:"p_values"`
	Scores      [][]float64 `json:"scores"`
	Offsets     [][]int     `json:"offsets"`
	Overlaps    [][]int     `json:"overlaps"`
	Strands     [][]int     `json:"strands"`
}

// CompareHandler handles motif comparison requests.
func CompareHandler(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	queries, err := motifList(req.Queries, req.QueryOrder)
	if err != nil {
		http.Error(w, `{"error": "queries: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	targets, err := motifList(req.Targets, req.TargetOrder)
	if err != nil {
		http.Error(w, `{"error": "targets: `+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	opts := motiflow.DefaultCompareOptions()
	if req.ReverseComplement != nil {
		opts.ReverseComplement = *req.ReverseComplement
	}
	if req.RigorousPValues {
		opts.PValueMode = motiflow.PValueConvolution
	}

	m, err := motiflow.Tomtom(queries, targets, opts)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	resp := CompareResponse{
		QueryNames:  motifNames(queries),
		TargetNames: motifNames(targets),
		PValues:     m.PValues,
		Scores:      m.Scores,
		Offsets:     m.Offsets,
		Overlaps:    m.Overlaps,
		Strands:     m.Strands,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func motifNames(motifs []motiflow.Motif) []string {
	names := make([]string, len(motifs))
	for i, m := range motifs {
		names[i] = m.Name
	}
	return names
}

func sortStrings(s []string) {
	sort.Strings(s)
}

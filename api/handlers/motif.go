package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/motiflow/motiflow-go/pkg/motiflow"
)

// EncodeRequest represents a one-hot encoding request.
type EncodeRequest struct {
	Sequence string `json:"sequence"`
}

// EncodeResponse represents the response for one-hot encoding.
type EncodeResponse struct {
	OneHot [][]float64 `json:"one_hot"`
	Length int         `json:"length"`
}

// EncodeHandler handles one-hot encoding requests.
func EncodeHandler(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	h, err := motiflow.OneHotEncode(req.Sequence)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EncodeResponse{
		OneHot: h,
		Length: h.Len(),
	})
}

// ConsensusRequest represents a consensus request.
type ConsensusRequest struct {
	PWM   [][]float64 `json:"pwm"`
	Force bool        `json:"force"`
}

// ConsensusResponse represents the response for consensus extraction.
type ConsensusResponse struct {
	Consensus string  `json:"consensus"`
	Width     int     `json:"width"`
	TotalInfo float64 `json:"total_info"`
	MeanInfo  float64 `json:"mean_info"`
	GCContent float64 `json:"gc_content"`
}

// ConsensusHandler handles consensus extraction requests.
func ConsensusHandler(w http.ResponseWriter, r *http.Request) {
	var req ConsensusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	pwm, err := motiflow.NewPWM(req.PWM)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	consensus, err := motiflow.Characters(pwm, req.Force)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	stats := motiflow.Stats(pwm)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConsensusResponse{
		Consensus: consensus,
		Width:     stats.Width,
		TotalInfo: stats.TotalInfo,
		MeanInfo:  stats.MeanInfo,
		GCContent: stats.GCContent,
	})
}

// ParseMemeRequest represents a MEME parsing request.
type ParseMemeRequest struct {
	Text      string `json:"text"`
	MaxMotifs int    `json:"max_motifs"`
}

// ParsedMotif is one motif from a parsed MEME document.
type ParsedMotif struct {
	Name  string      `json:"name"`
	Width int         `json:"width"`
	PWM   [][]float64 `json:"pwm"`
}

// ParseMemeResponse represents the response for MEME parsing.
type ParseMemeResponse struct {
	Motifs []ParsedMotif `json:"motifs"`
}

// ParseMemeHandler handles MEME text parsing requests.
func ParseMemeHandler(w http.ResponseWriter, r *http.Request) {
	var req ParseMemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	doc, err := motiflow.ReadMEME(req.Text, req.MaxMotifs)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	resp := ParseMemeResponse{Motifs: make([]ParsedMotif, 0, doc.Len())}
	for _, m := range doc.Motifs() {
		resp.Motifs = append(resp.Motifs, ParsedMotif{
			Name:  m.Name,
			Width: m.PWM.Width(),
			PWM:   m.PWM,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

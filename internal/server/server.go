// Package server exposes the win-ingest HTTP API.
package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/amsibert-fmms/Solitaire/internal/cache"
	"github.com/amsibert-fmms/Solitaire/internal/difficulty"
)

// Server holds the ingest API's dependencies.
type Server struct {
	Store     WinStore
	JWTSecret string
}

// NewServer wires a Server around store. secret enables bearer auth when
// non-empty.
func NewServer(store WinStore, secret string) *Server {
	return &Server{Store: store, JWTSecret: secret}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	if s.JWTSecret != "" {
		api.Use(s.authRequired())
	}
	api.POST("/win", s.handleIngestWin)
	api.GET("/deck/:deck_key", s.handleDeckSummary)
	return r
}

func (s *Server) handleIngestWin(c *gin.Context) {
	rec, err := decodeWinPayload(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New().String()
	if err := s.Store.Insert(c.Request.Context(), id, rec); err != nil {
		logrus.WithError(err).Error("failed to store win record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	if cache.Rdb != nil {
		go func(id string, rec difficulty.WinRecord) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := cache.PublishWin(ctx, id, rec); err != nil {
				logrus.WithError(err).Warn("failed to publish win record")
			}
		}(id, rec)
	}

	c.JSON(http.StatusCreated, gin.H{"status": "accepted"})
}

// DeckModeSummary aggregates wins for one deck and draw mode.
type DeckModeSummary struct {
	DeckKey          string   `json:"deck_key"`
	DrawMode         int      `json:"draw_mode"`
	MedianNodes      float64  `json:"median_nodes"`
	MedianTime       float64  `json:"median_time"`
	MedianDifficulty *float64 `json:"median_difficulty"`
	DifficultyLevel  string   `json:"difficulty_level"`
}

func (s *Server) handleDeckSummary(c *gin.Context) {
	deckKey := c.Param("deck_key")
	wins, err := s.Store.DeckWins(c.Request.Context(), deckKey)
	if err != nil {
		logrus.WithError(err).Error("failed to load deck wins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	if len(wins) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "deck not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deck_key":  deckKey,
		"summaries": summariseDeck(deckKey, wins),
	})
}

// summariseDeck groups wins by draw mode and computes per-mode medians.
// The level reported per mode is the most common non-empty level.
func summariseDeck(deckKey string, wins []difficulty.WinRecord) []DeckModeSummary {
	groups := make(map[int][]difficulty.WinRecord)
	var modes []int
	for _, w := range wins {
		if _, ok := groups[w.DrawMode]; !ok {
			modes = append(modes, w.DrawMode)
		}
		groups[w.DrawMode] = append(groups[w.DrawMode], w)
	}
	sort.Ints(modes)

	summaries := make([]DeckModeSummary, 0, len(modes))
	for _, mode := range modes {
		group := groups[mode]
		nodes := make([]float64, len(group))
		times := make([]float64, len(group))
		var scores []float64
		levelCounts := make(map[string]int)
		for i, w := range group {
			nodes[i] = w.NodeCount
			times[i] = w.SolveTimeMS
			if w.DifficultyScore != nil {
				scores = append(scores, *w.DifficultyScore)
			}
			if w.DifficultyLevel != "" {
				levelCounts[w.DifficultyLevel]++
			}
		}

		summary := DeckModeSummary{
			DeckKey:     deckKey,
			DrawMode:    mode,
			MedianNodes: medianFloat(nodes),
			MedianTime:  medianFloat(times),
		}
		if len(scores) > 0 {
			med := medianFloat(scores)
			summary.MedianDifficulty = &med
		}
		best := 0
		for level, count := range levelCounts {
			if count > best || (count == best && level < summary.DifficultyLevel) {
				best = count
				summary.DifficultyLevel = level
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func medianFloat(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

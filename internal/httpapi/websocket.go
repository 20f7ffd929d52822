package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/learner"
)

// streamEvent is the wire shape of a progress update pushed to a
// GET /v1/learn/stream client.
type streamEvent struct {
	Phase string  `json:"phase"`
	Class string  `json:"class,omitempty"`
	Rules int     `json:"rules,omitempty"`
	DL    float64 `json:"dl,omitempty"`
}

// StreamModel kicks off a training run against the dataset named by the
// "dataset" query parameter and relays learner.ProgressEvents to conn as
// they occur, closing the connection once the run finishes or fails.
func StreamModel(conn *websocket.Conn, s *Server, c *gin.Context) {
	path := c.Query("dataset")
	if path == "" {
		conn.WriteJSON(gin.H{"error": "missing dataset query parameter"})
		return
	}

	f, err := os.Open(path)
	if err != nil {
		conn.WriteJSON(gin.H{"error": fmt.Sprintf("opening dataset: %v", err)})
		return
	}
	defer f.Close()

	instances, err := dataset.LoadCSV(f)
	if err != nil {
		conn.WriteJSON(gin.H{"error": fmt.Sprintf("loading dataset: %v", err)})
		return
	}
	catalog := dataset.NewCatalog(instances)

	events := make(chan learner.ProgressEvent, 16)
	l := learner.New(catalog, learner.Config{Ratio: 2.0 / 3.0, K: 2}, s.logger, events)

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Fit(context.Background(), instances)
	}()

	go func() {
		<-done
		close(events)
	}()

	for ev := range events {
		payload := streamEvent{Phase: string(ev.Phase), Class: ev.Class, Rules: ev.Rules, DL: ev.DL}
		data, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// Package seed loads a YAML dataset of nodes, edges and shelters, either
// directly into the stores at startup or into a running server over its
// public API.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/shelter"
)

// Dataset is the on-disk seed file shape.
type Dataset struct {
	Nodes []struct {
		ID        string  `yaml:"id" json:"id"`
		Name      string  `yaml:"name" json:"name"`
		Latitude  float64 `yaml:"latitude" json:"latitude"`
		Longitude float64 `yaml:"longitude" json:"longitude"`
	} `yaml:"nodes"`
	Edges []struct {
		ID            string  `yaml:"id" json:"id"`
		From          string  `yaml:"from" json:"from"`
		To            string  `yaml:"to" json:"to"`
		Weight        float64 `yaml:"weight" json:"weight"`
		Bidirectional bool    `yaml:"bidirectional" json:"bidirectional,omitempty"`
	} `yaml:"edges"`
	Shelters []struct {
		ShelterID string  `yaml:"shelterId" json:"shelterId"`
		Name      string  `yaml:"name" json:"name"`
		Capacity  int     `yaml:"capacity" json:"capacity"`
		Latitude  float64 `yaml:"latitude" json:"latitude"`
		Longitude float64 `yaml:"longitude" json:"longitude"`
	} `yaml:"shelters"`
}

// LoadFile parses a dataset from a YAML file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return &ds, nil
}

// Apply loads the dataset straight into the stores. Used by serve --seed.
func (ds *Dataset) Apply(g *graph.Store, reg *shelter.Registry) error {
	for _, n := range ds.Nodes {
		if err := g.AddNode(n.ID, n.Name, n.Latitude, n.Longitude); err != nil {
			return fmt.Errorf("seeding node %s: %w", n.ID, err)
		}
	}
	for _, e := range ds.Edges {
		if err := g.AddEdge(e.ID, e.From, e.To, e.Weight); err != nil {
			return fmt.Errorf("seeding edge %s: %w", e.ID, err)
		}
		if e.Bidirectional {
			if err := g.AddEdge(e.ID+"-rev", e.To, e.From, e.Weight); err != nil {
				return fmt.Errorf("seeding edge %s: %w", e.ID+"-rev", err)
			}
		}
	}
	for _, s := range ds.Shelters {
		if err := reg.Create(s.ShelterID, s.Name, s.Capacity, s.Latitude, s.Longitude); err != nil {
			return fmt.Errorf("seeding shelter %s: %w", s.ShelterID, err)
		}
	}
	return nil
}

// Post sends the dataset to a running server through the public API. Used
// by the seed subcommand.
func (ds *Dataset) Post(client *http.Client, baseURL string) error {
	for _, n := range ds.Nodes {
		if err := postJSON(client, baseURL+"/api/nodes", n); err != nil {
			return fmt.Errorf("seeding node %s: %w", n.ID, err)
		}
	}
	for _, e := range ds.Edges {
		if err := postJSON(client, baseURL+"/api/edges", e); err != nil {
			return fmt.Errorf("seeding edge %s: %w", e.ID, err)
		}
	}
	for _, s := range ds.Shelters {
		if err := postJSON(client, baseURL+"/api/shelters", s); err != nil {
			return fmt.Errorf("seeding shelter %s: %w", s.ShelterID, err)
		}
	}
	return nil
}

func postJSON(client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %s: %s", url, resp.Status, msg)
	}
	return nil
}

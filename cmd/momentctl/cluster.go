// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/policy"
	"github.com/tomtom215/momentline/internal/validation"
)

// Manifest is the YAML input of the cluster command.
//
//	context_id: rex
//	context_kind: pet
//	owner_id: user-1
//	photos:
//	  - id: a
//	    captured_at: 2026-05-02T10:00:00Z
//	    latitude: 48.85
//	    longitude: 2.35
//	    caption: park
//	  - id: b
//	    fuzzy_date: {granularity: year, start: 1994-01-01T00:00:00Z, end: 1995-01-01T00:00:00Z}
type Manifest struct {
	ContextID   string            `yaml:"context_id"`
	ContextKind string            `yaml:"context_kind"`
	OwnerID     string            `yaml:"owner_id"`
	Photos      []models.RawPhoto `yaml:"photos"`
}

type clusterOptions struct {
	input      string
	contextID  string
	kind       string
	ownerID    string
	timeWindow time.Duration
	distance   float64
	burstMin   int
	burstGap   time.Duration
	policyPath string
	asJSON     bool
}

func newClusterCmd(root *rootOptions) *cobra.Command {
	opts := &clusterOptions{}

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster a photo manifest into timeline events",
		Long: `Runs normalization, temporal grouping, spatial refinement, burst
detection and materialization over a YAML manifest and prints the events.
Nothing is persisted. Flags override the manifest and the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCluster(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "YAML photo manifest (- for stdin)")
	f.StringVar(&opts.contextID, "context", "", "Context ID (overrides manifest)")
	f.StringVar(&opts.kind, "kind", "", "Context kind: person, pet, project, business")
	f.StringVar(&opts.ownerID, "owner", "", "Owner ID (overrides manifest)")
	f.DurationVar(&opts.timeWindow, "time-window", 0, "Temporal grouping window")
	f.Float64Var(&opts.distance, "distance", 0, "Spatial split threshold in meters")
	f.IntVar(&opts.burstMin, "burst-min", 0, "Minimum photos in a burst")
	f.DurationVar(&opts.burstGap, "burst-gap", 0, "Maximum gap between burst photos")
	f.StringVar(&opts.policyPath, "policy", "", "Event policy file (default: configured or built-in)")
	f.BoolVar(&opts.asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func readManifest(cmd *cobra.Command, path string) (*Manifest, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		defer f.Close()
		r = f
	}

	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// resolveOwner applies flag overrides and validates the result.
func resolveOwner(m *Manifest, opts *clusterOptions) (models.Owner, error) {
	owner := models.Owner{
		ContextID:   m.ContextID,
		ContextKind: models.ContextKind(strings.ToLower(m.ContextKind)),
		OwnerID:     m.OwnerID,
	}
	if opts.contextID != "" {
		owner.ContextID = opts.contextID
	}
	if opts.kind != "" {
		owner.ContextKind = models.ContextKind(strings.ToLower(opts.kind))
	}
	if opts.ownerID != "" {
		owner.OwnerID = opts.ownerID
	}
	if verr := validation.ValidateStruct(&owner); verr != nil {
		return owner, fmt.Errorf("invalid owner: %w", verr)
	}
	return owner, nil
}

func runCluster(cmd *cobra.Command, root *rootOptions, opts *clusterOptions) error {
	m, err := readManifest(cmd, opts.input)
	if err != nil {
		return err
	}
	owner, err := resolveOwner(m, opts)
	if err != nil {
		return err
	}

	params := root.cfg.Clustering.ParamsFor(owner.ContextID, owner.ContextKind)
	f := cmd.Flags()
	if f.Changed("time-window") {
		params.TimeWindow = opts.timeWindow
	}
	if f.Changed("distance") {
		params.DistanceThreshold = opts.distance
	}
	if f.Changed("burst-min") {
		params.BurstMinCount = opts.burstMin
	}
	if f.Changed("burst-gap") {
		params.BurstGapThreshold = opts.burstGap
	}

	policyPath := root.cfg.Policy.Path
	if opts.policyPath != "" {
		policyPath = opts.policyPath
	}
	pol := policy.Builtin()
	if policyPath != "" {
		if pol, err = policy.Load(policyPath); err != nil {
			return err
		}
	}

	engine := clustering.NewEngine(pol.Resolver, pol.Defaults)
	engine.Workers = root.cfg.Clustering.Workers
	res, err := engine.Run(m.Photos, owner, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Owner  models.Owner                  `json:"owner"`
			Events []models.TimelineEvent        `json:"events"`
			Bursts map[string][]clustering.Burst `json:"bursts,omitempty"`
		}{owner, res.Events, res.Bursts})
	}
	return printEvents(out, res)
}

func printEvents(w io.Writer, res *clustering.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tTYPE\tPHOTOS\tBURSTS\tKEY\tTITLE")
	for _, e := range res.Events {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			when(&e), e.EventType, len(e.MemberPhotoIDs), len(res.Bursts[e.ID]), e.KeyPhotoID, e.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d photos in %d events\n", len(res.Photos), len(res.Events))
	return err
}

func when(e *models.TimelineEvent) string {
	switch {
	case e.Timestamp != nil:
		return e.Timestamp.UTC().Format("2006-01-02 15:04")
	case e.FuzzyDate != nil:
		return fmt.Sprintf("~%s %s", e.FuzzyDate.Granularity, e.FuzzyDate.Start.Format("2006"))
	default:
		return "-"
	}
}

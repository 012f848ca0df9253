package main

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/sorting"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// buildSession собирает сессию из дампа и пресета и делает первый полный проход.
func buildSession(opts *options) (*domain.Session, error) {
	listings, err := loadListings(opts.listingsPath)
	if err != nil {
		return nil, err
	}
	preset, err := loadPreset(opts.presetPath)
	if err != nil {
		return nil, err
	}

	sess := domain.NewSession("cli", "cli", domain.RoleAdmin, time.Now())
	sess.Listings = listings
	if err := preset.apply(sess); err != nil {
		return nil, err
	}
	pipeline.Refresh(sess)

	// кнопки сортировки нажимаются как в интерфейсе: каждое нажатие пересобирает вид
	for _, family := range preset.Sort {
		mode, err := sorting.Advance(sess.SortCycles, domain.SortFamily(family))
		if err != nil {
			return nil, err
		}
		sess.SortMode = mode
		pipeline.Compose(sess)
	}
	return sess, nil
}

func runView(w io.Writer, opts *options) error {
	sess, err := buildSession(opts)
	if err != nil {
		return err
	}
	view := sess.View
	items := view.Items
	if opts.limit > 0 && opts.limit < len(items) {
		items = items[:opts.limit]
	}

	if opts.output != "table" {
		return encode(w, opts.output, map[string]interface{}{
			"total":     view.Total,
			"filtered":  view.Filtered,
			"loaded":    view.Loaded,
			"sort_mode": view.SortMode,
			"items":     items,
		})
	}

	fmt.Fprintf(w, "loaded %d, after filters %d, shown %d, sort %s\n", view.Loaded, view.Total, view.Filtered, view.SortMode)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tREGION\tFLOOR\tAREA\tDEPOSIT\tRENT")
	for _, l := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", l.ID, sess.Briefing.Status(l.ID),
			l.Field(domain.FieldRegion), l.Field(domain.FieldFloor), l.Field(domain.FieldAreaReal),
			l.Field(domain.FieldDeposit), l.Field(domain.FieldRent))
	}
	return tw.Flush()
}

func runBriefing(w io.Writer, opts *options) error {
	sess, err := buildSession(opts)
	if err != nil {
		return err
	}
	list := pipeline.BriefingList(sess, domain.ViewOriginal)

	if opts.output != "table" {
		out := make([]map[string]interface{}, len(list.Items))
		for i, it := range list.Items {
			out[i] = map[string]interface{}{"listing": it.Listing, "status": it.Status}
		}
		return encode(w, opts.output, map[string]interface{}{
			"total":    list.Total,
			"briefing": list.Briefing,
			"filtered": list.Filtered,
			"items":    out,
		})
	}

	fmt.Fprintf(w, "customer %q: %d of %d listings in briefing\n", sess.CustomerName, list.Briefing, list.Total)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tREGION\tBUILDING")
	for _, it := range list.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Listing.ID, it.Status,
			it.Listing.Field(domain.FieldRegion), it.Listing.Field(domain.FieldBuilding))
	}
	return tw.Flush()
}

func runClusters(w io.Writer, opts *options) error {
	sess, err := buildSession(opts)
	if err != nil {
		return err
	}
	clusters := pipeline.Clusters(sess.View, &sess.Briefing, opts.precision)

	if opts.output != "table" {
		out := make([]map[string]interface{}, len(clusters))
		for i, c := range clusters {
			out[i] = map[string]interface{}{
				"geohash": c.Geohash,
				"lat":     c.Lat,
				"lng":     c.Lng,
				"count":   c.Count,
				"size":    c.Size,
				"primary": c.Primary,
				"stats":   c.Stats,
			}
		}
		return encode(w, opts.output, out)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GEOHASH\tCOUNT\tSIZE\tPRIMARY\tPENDING\tCOMPLETED\tONHOLD")
	for _, c := range clusters {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\t%d\n", c.Geohash, c.Count, c.Size, c.Primary,
			c.Stats.Pending, c.Stats.Completed, c.Stats.OnHold)
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

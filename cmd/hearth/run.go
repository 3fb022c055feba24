package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthlabs/hearth/internal/action"
	"github.com/hearthlabs/hearth/internal/config"
	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/history"
	"github.com/hearthlabs/hearth/internal/intent"
	"github.com/hearthlabs/hearth/internal/match"
)

var errNoMatch = errors.New("no matching devices found")

// runText is the root command: everything after `hearth` is the command text.
func runText(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	initDebug(cfg)

	text := strings.ToLower(strings.TrimSpace(strings.Join(args, " ")))

	reg, err := entity.Load(cfg.CachePath())
	if err != nil {
		return fmt.Errorf("no entity cache — run `hearth reload` first (%w)", err)
	}
	debugf("loaded %d cached entities", reg.Len())

	matcher := match.New(reg, thresholdsFrom(cfg), colorLights(cfg))
	found := matcher.Find(text)
	if len(found) == 0 {
		recordRun(cfg, history.Record{
			Input:      text,
			Outcome:    "NO_MATCH",
			DurationMs: time.Since(start).Milliseconds(),
		})
		return errNoMatch
	}
	debugf("candidates: %v", found)

	// Short ambiguous commands narrow to one entity, preferring queryable
	// domains; everything else acts on all matched devices.
	targets := found
	chosen := found[0]
	if matcher.IsShort(text) && len(found) > 1 {
		if c, ok := match.ResolvePreferred(found, cfg.Matcher.CompetitiveRatio); ok {
			chosen = c
			targets = []match.Candidate{c}
			debugf("ambiguity resolved to %s (score %.0f)", c.EntityID, c.Score)
		}
	}

	primary, _ := reg.ByID(chosen.EntityID)
	classified := intent.Classify(text, primary.Domain)
	debugf("intent: %s (primary domain %s)", classified, primary.Domain)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runner := action.NewRunner(newClient(cfg), reg, action.Options{HVACMode: cfg.Climate.DefaultMode})

	outcome := "OK"
	var acted []string
	for _, cand := range targets {
		e, ok := reg.ByID(cand.EntityID)
		if !ok {
			continue
		}

		out, executed, err := runner.Run(ctx, e, classified)
		switch {
		case errors.Is(err, action.ErrNoAction):
			debugf("no default action for %s", e.EntityID)
			continue
		case err != nil:
			outcome = "FAILED"
			fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
			continue
		case !executed:
			debugf("%s ignored for %s", classified, e.EntityID)
			continue
		}

		acted = append(acted, e.EntityID)
		if out != "" {
			fmt.Println(out)
		} else {
			fmt.Printf("%s %s → %s\n",
				styleSuccess.Render("✓"),
				styleName.Render(reg.DisplayName(e.EntityID)),
				classified)
		}
	}

	recordRun(cfg, history.Record{
		Input:      text,
		EntityIDs:  strings.Join(acted, ","),
		Intent:     string(classified.Kind),
		Outcome:    outcome,
		DurationMs: time.Since(start).Milliseconds(),
	})
	debugf("total execution time: %dms", time.Since(start).Milliseconds())

	if outcome == "FAILED" {
		return errors.New("one or more commands failed")
	}
	return nil
}

func colorLights(cfg *config.Config) []string {
	if len(cfg.ColorLights) > 0 {
		return cfg.ColorLights
	}
	// Fall back to a configured default light so "blue" still does something.
	if id, ok := cfg.Defaults["lights"]; ok {
		return []string{id}
	}
	return nil
}

// recordRun appends to the invocation history. History problems are traced,
// never fatal.
func recordRun(cfg *config.Config, rec history.Record) {
	db, err := history.Open(cfg.HistoryPath())
	if err != nil {
		debugf("history unavailable: %v", err)
		return
	}
	defer db.Close()

	if err := db.Append(rec); err != nil {
		debugf("history append failed: %v", err)
	}
}

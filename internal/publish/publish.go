package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/everstacklabs/modelfetch/internal/catalog"
	"github.com/everstacklabs/modelfetch/internal/config"
	"github.com/everstacklabs/modelfetch/internal/diff"
)

// Publisher pushes catalog updates to a git repository and opens a PR.
type Publisher struct {
	cfg   config.GitHubConfig
	store *catalog.Store
}

// New creates a Publisher for the given GitHub settings and catalog store.
func New(cfg config.GitHubConfig, store *catalog.Store) *Publisher {
	return &Publisher{cfg: cfg, store: store}
}

// Result describes a published catalog update.
type Result struct {
	Branch   string
	PRNumber int
	PRURL    string
	Changes  *diff.ChangeSet
}

// Publish copies the current catalog into the checked-out repo, commits
// it on a fresh branch, pushes, and opens a pull request. It is a no-op
// (nil Result, nil error) when the repo copy already matches.
func (p *Publisher) Publish(ctx context.Context, draft bool) (*Result, error) {
	if p.cfg.Token == "" {
		return nil, fmt.Errorf("github token not configured")
	}
	if p.cfg.RepoPath == "" {
		return nil, fmt.Errorf("github repo_path not configured")
	}

	dest := filepath.Join(p.cfg.RepoPath, catalog.CatalogFile)
	oldCat := catalog.NewStore(p.cfg.RepoPath).Load()
	newCat := p.store.Load()

	cs := diff.Compute(oldCat, newCat)
	if !cs.HasChanges() {
		slog.Info("catalog unchanged, nothing to publish")
		return nil, nil
	}

	data, err := os.ReadFile(p.store.Path())
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return nil, fmt.Errorf("copying catalog into repo: %w", err)
	}

	branchName := fmt.Sprintf("modelfetch/catalog-%s", time.Now().Format("20060102-150405"))
	commitMsg := fmt.Sprintf("chore(catalog): update model catalog (%d changed)", cs.TotalChanged())

	gitOps, err := OpenRepo(p.cfg.RepoPath, p.cfg.Token)
	if err != nil {
		return nil, err
	}

	if err := gitOps.CreateBranch(branchName); err != nil {
		return nil, fmt.Errorf("creating branch: %w", err)
	}
	if err := gitOps.AddAll(); err != nil {
		return nil, fmt.Errorf("staging changes: %w", err)
	}
	if err := gitOps.Commit(commitMsg); err != nil {
		return nil, fmt.Errorf("committing: %w", err)
	}
	if err := gitOps.Push(); err != nil {
		return nil, fmt.Errorf("pushing: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: p.cfg.Token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	title := commitMsg
	body := diff.RenderPRBody(cs)

	pr, _, err := client.PullRequests.Create(ctx, p.cfg.Owner, p.cfg.Repo, &github.NewPullRequest{
		Title: &title,
		Body:  &body,
		Head:  &branchName,
		Base:  &p.cfg.BaseBranch,
		Draft: &draft,
	})
	if err != nil {
		return nil, fmt.Errorf("creating PR: %w", err)
	}

	slog.Info("PR created",
		"number", pr.GetNumber(),
		"draft", draft,
		"url", pr.GetHTMLURL())

	return &Result{
		Branch:   branchName,
		PRNumber: pr.GetNumber(),
		PRURL:    pr.GetHTMLURL(),
		Changes:  cs,
	}, nil
}

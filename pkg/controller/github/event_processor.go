package github

import (
	"context"
	"encoding/json"

	"github.com/google/go-github/v75/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/warden/pkg/domain/interfaces"
	"github.com/m-mizutani/warden/pkg/domain/model"
	"github.com/m-mizutani/warden/pkg/utils/report"
)

// EventProcessor turns accepted GitHub webhook events into patch series
// check runs. It implements interfaces.EventHandler.
type EventProcessor struct {
	checkUC  interfaces.CheckUseCase
	comments interfaces.GitHubClient // nil disables comment posting
}

// Option is a functional option for EventProcessor configuration
type Option func(*EventProcessor)

// WithCommenter enables posting the check report as a PR comment
func WithCommenter(comments interfaces.GitHubClient) Option {
	return func(p *EventProcessor) {
		p.comments = comments
	}
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(checkUC interfaces.CheckUseCase, opts ...Option) *EventProcessor {
	p := &EventProcessor{checkUC: checkUC}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleEvent runs the series check for a pull request event. Events
// that do not update a patch series are logged and ignored.
func (p *EventProcessor) HandleEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	if !event.IsSupportedEvent() {
		logger.Info("Ignoring unsupported event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	var prEvent github.PullRequestEvent
	if err := json.Unmarshal(event.RawPayload, &prEvent); err != nil {
		return goerr.Wrap(err, "failed to unmarshal pull request event")
	}

	pr := &model.PullRequest{
		Owner:   prEvent.GetRepo().GetOwner().GetLogin(),
		Repo:    prEvent.GetRepo().GetName(),
		Number:  prEvent.GetPullRequest().GetNumber(),
		BaseSHA: prEvent.GetPullRequest().GetBase().GetSHA(),
		HeadSHA: prEvent.GetPullRequest().GetHead().GetSHA(),
	}
	if pr.BaseSHA == "" || pr.HeadSHA == "" {
		return goerr.New("pull request event without base/head SHA",
			goerr.V("repository", event.Repository),
		)
	}

	runID := uuid.New().String()
	logger.Info("Running patch series check",
		"run_id", runID,
		"owner", pr.Owner,
		"repo", pr.Repo,
		"number", pr.Number,
		"base", pr.BaseSHA,
		"head", pr.HeadSHA,
	)

	result, err := p.checkUC.CheckRange(ctx, pr.BaseSHA, pr.HeadSHA)
	if err != nil {
		return goerr.Wrap(err, "check run failed", goerr.V("run_id", runID))
	}

	logger.Info("Patch series check finished",
		"run_id", runID,
		"passed", result.Passed(),
		"commits", len(result.Commits),
	)

	if p.comments == nil {
		return nil
	}

	body := report.Markdown(result)
	if err := p.comments.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, body); err != nil {
		return goerr.Wrap(err, "failed to post check report", goerr.V("run_id", runID))
	}

	return nil
}

package submission

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MDSCJ/Data-Collection/internal/common/clock"
	"github.com/MDSCJ/Data-Collection/internal/common/errors"
	commonhttp "github.com/MDSCJ/Data-Collection/internal/common/http"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/common/metrics"
	"github.com/MDSCJ/Data-Collection/internal/common/observability"
	"github.com/MDSCJ/Data-Collection/internal/common/validation"
)

type ServiceDependencies struct {
	Logger        logger.Logger
	HTTPClient    *commonhttp.Client
	Clock         clock.Clock
	Observability *observability.Observability
}

// Pipeline turns a form snapshot into one POST to the collection endpoint.
type Pipeline struct {
	config *Config
	logger logger.Logger
	client *commonhttp.Client
	clock  clock.Clock
	obs    *observability.Observability
	newID  func() string
}

func NewPipeline(deps ServiceDependencies, config *Config) *Pipeline {
	client := deps.HTTPClient
	if client == nil {
		client = commonhttp.NewClient(config.Timeout)
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Pipeline{
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "submission-pipeline"}),
		client: client,
		clock:  clk,
		obs:    deps.Observability,
		newID:  uuid.NewString,
	}
}

// BuildDocument assembles the payload. Reserved keys always win over
// respondent fields of the same name.
func (p *Pipeline) BuildDocument(s Snapshot) map[string]string {
	doc := make(map[string]string, len(s.Fields)+5)
	for k, v := range s.Fields {
		doc[k] = v
	}
	doc[KeyLatitude] = s.Latitude
	doc[KeyLongitude] = s.Longitude
	doc[KeyFamilyMembersData] = s.FamilyMembersData
	doc[KeyTimestamp] = p.clock.Now().Format(p.config.TimestampLayout)
	if p.config.IncludeSecret {
		doc[KeySecretToken] = p.config.SecretToken
	} else {
		delete(doc, KeySecretToken)
	}
	return doc
}

// Submit sends the snapshot once. It never retries and never reads the
// response body; the result's Outcome carries the tri-state verdict.
func (p *Pipeline) Submit(ctx context.Context, s Snapshot) Result {
	start := time.Now()
	res := Result{SubmissionID: p.newID()}
	log := p.logger.WithFields(map[string]interface{}{"submissionId": res.SubmissionID})

	finish := func(outcome Outcome, err error) Result {
		res.Outcome = outcome
		res.Err = err
		res.Duration = time.Since(start)
		metrics.SubmissionsTotal.WithLabelValues(outcome.String()).Inc()
		metrics.SubmissionDuration.WithLabelValues(outcome.String()).Observe(res.Duration.Seconds())
		p.obs.RecordSubmission(ctx, res.Duration, outcome.String())

		fields := map[string]interface{}{
			"outcome":    outcome.String(),
			"statusCode": res.StatusCode,
			"durationMs": res.Duration.Milliseconds(),
		}
		if err != nil {
			log.WithError(err).Error("submission failed", fields)
		} else {
			log.Info("submission finished", fields)
		}
		return res
	}

	doc := p.BuildDocument(s)
	if err := p.checkSchema(doc); err != nil {
		return finish(OutcomeFailed, err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return finish(OutcomeFailed, errors.NewSubmissionFailedError(fmt.Errorf("encode payload: %w", err)))
	}

	log.Info("submitting form", map[string]interface{}{
		"endpoint": p.config.Endpoint,
		"fields":   len(doc),
	})

	reqCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.PostJSON(reqCtx, p.config.Endpoint, body, map[string]string{
		HeaderSubmissionID: res.SubmissionID,
	})
	if err != nil {
		if stderrors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return finish(OutcomeFailed, errors.NewSubmissionTimeoutError(p.config.Timeout, err))
		}
		return finish(OutcomeFailed, errors.NewSubmissionFailedError(err))
	}
	resp.Body.Close()
	res.StatusCode = resp.StatusCode

	if !p.config.ConfirmResponse {
		return finish(OutcomeSentUnconfirmed, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return finish(OutcomeFailed, errors.NewSubmissionFailedError(fmt.Errorf("endpoint answered %d", resp.StatusCode)))
	}
	return finish(OutcomeAcknowledged, nil)
}

func (p *Pipeline) checkSchema(doc map[string]string) error {
	if p.config.Schema == nil {
		return nil
	}
	result, err := validation.ValidateDocument(p.config.Schema, doc)
	if err != nil {
		return errors.NewPayloadSchemaViolationError(err.Error())
	}
	if !result.Valid {
		return errors.NewPayloadSchemaViolationError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

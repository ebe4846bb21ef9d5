package service

import (
	"context"
	"io"
	"os"

	"liveness/internal/adapters/faceapi"
	"liveness/internal/adapters/imagestore"
	perr "liveness/internal/platform/errors"
	"liveness/internal/platform/logger"
	dom "liveness/internal/services/liveness/domain"
)

const (
	msgConfig          = "Please set the FACEAPI_ENDPOINT, FACEAPI_KEY, FACEAPI_WEBSITE environment variables for the liveness server."
	msgMissingRef      = "Please provide the VERIFY_IMAGE_FILE_NAME"
	msgSessionCreation = "Failed to create liveness session. Please check the FACEAPI_ENDPOINT, FACEAPI_KEY, FACEAPI_WEBSITE environment variables."
	msgURLCreation     = "Failed to create liveness session url. Please check the FACEAPI_ENDPOINT, FACEAPI_KEY, FACEAPI_WEBSITE environment variables."
)

// FaceAPI is the slice of the Face API client the session client needs
type FaceAPI interface {
	Configured() bool
	Website() string
	CreateSession(ctx context.Context, op faceapi.Operation, in faceapi.CreateSessionRequest) (faceapi.CreatedSession, error)
	CreateShortLink(ctx context.Context, authToken string) (string, error)
	SessionResult(ctx context.Context, op faceapi.Operation, sessionID string) (faceapi.SessionResult, error)
	SessionImage(ctx context.Context, imageID string) (io.ReadCloser, error)
}

// SessionClient turns Face API calls into domain sessions and outcomes
type SessionClient struct {
	api      FaceAPI
	store    *imagestore.FS
	log      *logger.Logger
	readFile func(string) ([]byte, error)
}

var _ dom.SessionPort = (*SessionClient)(nil)

// NewSessionClient builds a client; a nil or disabled store skips image persistence
func NewSessionClient(api FaceAPI, store *imagestore.FS) *SessionClient {
	return &SessionClient{
		api:      api,
		store:    store,
		log:      logger.Named("session-client"),
		readFile: os.ReadFile,
	}
}

// CreateSession creates a remote session and mints the link the human opens
// The auth token is spent on the short link and not kept
func (c *SessionClient) CreateSession(ctx context.Context, mode dom.Mode, correlationID, referenceImage string) (dom.Session, error) {
	if !c.api.Configured() {
		return dom.Session{}, perr.New(perr.ErrorCodeConfiguration, msgConfig)
	}

	req := faceapi.NewCreateSessionRequest(correlationID)
	if mode == dom.ModeVerify {
		if referenceImage == "" {
			return dom.Session{}, perr.New(perr.ErrorCodeMissingReference, msgMissingRef)
		}
		data, err := c.readFile(referenceImage)
		if err != nil {
			return dom.Session{}, perr.Wrap(err, perr.ErrorCodeMissingReference, msgMissingRef)
		}
		req.VerifyImage = &faceapi.VerifyImage{FileName: referenceImage, Data: data}
	}

	created, err := c.api.CreateSession(ctx, faceapi.Operation(mode.PathSegment()), req)
	if err != nil {
		return dom.Session{}, perr.Wrap(err, perr.ErrorCodeSessionCreation, msgSessionCreation)
	}
	if created.SessionID == "" || created.AuthToken == "" {
		return dom.Session{}, perr.New(perr.ErrorCodeSessionCreation, msgSessionCreation)
	}

	link, err := c.api.CreateShortLink(ctx, created.AuthToken)
	if err != nil {
		return dom.Session{}, perr.Wrap(err, perr.ErrorCodeURLCreation, msgURLCreation)
	}
	if link == "" {
		return dom.Session{}, perr.New(perr.ErrorCodeURLCreation, msgURLCreation)
	}

	s := dom.Session{
		ID:            created.SessionID,
		Mode:          mode,
		URL:           c.api.Website() + link,
		CorrelationID: correlationID,
	}
	c.log.Info().
		Str("session_id", s.ID).
		Str("mode", mode.String()).
		Str("correlation_id", correlationID).
		Msg("liveness session created")
	return s, nil
}

// SessionStatus observes a session once
// Transport failures and a missing status read as "not done yet"; only a failed image write is an error
func (c *SessionClient) SessionStatus(ctx context.Context, s dom.Session) (dom.Outcome, error) {
	if !c.api.Configured() {
		return dom.Outcome{SessionID: s.ID}, perr.New(perr.ErrorCodeConfiguration, msgConfig)
	}
	out := dom.Outcome{SessionID: s.ID}

	res, err := c.api.SessionResult(ctx, faceapi.Operation(s.Mode.PathSegment()), s.ID)
	if err != nil {
		c.log.Warn().Err(err).Str("session_id", s.ID).Int("upstream_status", faceapi.StatusOf(err)).Msg("session status unavailable")
		return out, nil
	}
	out.Status = res.Status
	if !out.Succeeded() {
		return out, nil
	}

	if r := res.FirstResult(); r != nil {
		out.Liveness = dom.ParseDecision(r.LivenessDecision)
		out.ImageRef = r.SessionImageID
		if s.Mode == dom.ModeVerify && r.VerifyResult != nil && r.VerifyResult.IsIdentical != nil {
			m := *r.VerifyResult.IsIdentical
			out.Match = &m
		}
	}

	if out.ImageRef == "" || !c.store.Enabled() {
		return out, nil
	}
	path, err := c.saveImage(ctx, s.ID, out.ImageRef)
	if err != nil {
		return out, err
	}
	out.ImagePath = path
	return out, nil
}

// saveImage downloads and persists the session image
// A failed download is skipped; a failed write is reported
func (c *SessionClient) saveImage(ctx context.Context, sessionID, imageID string) (string, error) {
	rc, err := c.api.SessionImage(ctx, imageID)
	if err != nil {
		c.log.Warn().Err(err).
			Str("session_id", sessionID).
			Str("image_id", imageID).
			Int("upstream_status", faceapi.StatusOf(err)).
			Msg("session image download failed")
		return "", nil
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("image_id", imageID).Msg("session image close failed")
		}
	}()

	path, err := c.store.Save(sessionID, rc)
	if err != nil {
		return "", perr.WithOp(err, "save session image")
	}
	c.log.Debug().Str("session_id", sessionID).Str("path", path).Msg("session image saved")
	return path, nil
}

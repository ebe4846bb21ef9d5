package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	perr "liveness/internal/platform/errors"
)

const maxDocBytes = 1 << 20

// CreateSession starts a liveness session of the given flavour
// Verify sessions go out as multipart with the reference image in the VerifyImage part
// Only throttled responses are replayed; a lost response may already have created a session
func (c *Client) CreateSession(ctx context.Context, op Operation, in CreateSessionRequest) (CreatedSession, error) {
	var (
		body []byte
		ct   string
		err  error
	)
	if op == OpDetectLivenessWithVerify {
		body, ct, err = multipartBody(in)
	} else {
		body, err = json.Marshal(in)
		ct = "application/json"
	}
	if err != nil {
		if _, ok := perr.As(err); ok {
			return CreatedSession{}, err
		}
		return CreatedSession{}, perr.Wrapf(err, perr.ErrorCodeJSON, "faceapi encode session request")
	}

	path := apiVersionPath + "/" + string(op) + "-sessions"
	var out CreatedSession
	err = c.doJSON(ctx, request{
		method:      http.MethodPost,
		url:         c.base + path,
		contentType: ct,
		body:        body,
		header:      c.faceHeader(),
		retry:       retryThrottled,
	}, &out)
	return out, err
}

// CreateShortLink exchanges the session auth token for a path on the website
// The caller prefixes the returned path with the website base
func (c *Client) CreateShortLink(ctx context.Context, authToken string) (string, error) {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+authToken)
	var out shortLink
	err := c.doJSON(ctx, request{
		method:      http.MethodPost,
		url:         c.opts.Website + "/api/s",
		contentType: "application/json",
		body:        []byte("{}"),
		header:      h,
		retry:       retryThrottled,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// SessionResult fetches the status document of a session in a single request
// Pollers call it once per tick, so the next tick is the retry
func (c *Client) SessionResult(ctx context.Context, op Operation, sessionID string) (SessionResult, error) {
	path := apiVersionPath + "/" + string(op) + "-sessions/" + url.PathEscape(sessionID)
	var out SessionResult
	err := c.doJSON(ctx, request{
		method: http.MethodGet,
		url:    c.base + path,
		header: c.faceHeader(),
		retry:  retryNever,
	}, &out)
	return out, err
}

// SessionImage streams the JPEG captured during a session; the caller closes it
func (c *Client) SessionImage(ctx context.Context, imageID string) (io.ReadCloser, error) {
	path := apiVersionPath + "/sessionImages/" + url.PathEscape(imageID)
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		url:    c.base + path,
		header: c.faceHeader(),
		retry:  retryTransient,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) doJSON(ctx context.Context, r request, out any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("url", r.url).Msg("faceapi close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocBytes))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "faceapi read body")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "faceapi decode body")
	}
	return nil
}

func multipartBody(in CreateSessionRequest) ([]byte, string, error) {
	if in.VerifyImage == nil {
		return nil, "", perr.Newf(perr.ErrorCodeMissingReference, "verify session requires a reference image")
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ k, v string }{
		{"authTokenTimeToLiveInSeconds", strconv.Itoa(in.AuthTokenTimeToLiveInSeconds)},
		{"livenessOperationMode", in.LivenessOperationMode},
		{"sendResultsToClient", strconv.FormatBool(in.SendResultsToClient)},
		{"deviceCorrelationId", in.DeviceCorrelationID},
		{"enableSessionImage", strconv.FormatBool(in.EnableSessionImage)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.k, f.v); err != nil {
			return nil, "", err
		}
	}
	name := in.VerifyImage.FileName
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	part, err := w.CreateFormFile("VerifyImage", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(in.VerifyImage.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

package faceapi

// Operation selects the session flavour and doubles as the URL path segment
type Operation string

// Session flavours
const (
	OpDetectLiveness           Operation = "detectLiveness"
	OpDetectLivenessWithVerify Operation = "detectLivenessWithVerify"
)

// Session creation defaults used by the liveness web app
const (
	OperationModePassiveActive = "PassiveActive"
	DefaultAuthTokenTTLSeconds = 600
)

// VerifyImage is the reference image uploaded with a verify session
type VerifyImage struct {
	FileName string
	Data     []byte
}

// CreateSessionRequest is the body of a session creation call
type CreateSessionRequest struct {
	LivenessOperationMode        string `json:"livenessOperationMode"`
	SendResultsToClient          bool   `json:"sendResultsToClient"`
	DeviceCorrelationID          string `json:"deviceCorrelationId"`
	AuthTokenTimeToLiveInSeconds int    `json:"authTokenTimeToLiveInSeconds"`
	EnableSessionImage           bool   `json:"enableSessionImage"`

	// VerifyImage is sent as the multipart file part in verify sessions
	VerifyImage *VerifyImage `json:"-"`
}

// NewCreateSessionRequest fills the fixed fields for a correlation id
func NewCreateSessionRequest(correlationID string) CreateSessionRequest {
	return CreateSessionRequest{
		LivenessOperationMode:        OperationModePassiveActive,
		SendResultsToClient:          false,
		DeviceCorrelationID:          correlationID,
		AuthTokenTimeToLiveInSeconds: DefaultAuthTokenTTLSeconds,
		EnableSessionImage:           true,
	}
}

// CreatedSession is the creation response
type CreatedSession struct {
	SessionID string `json:"sessionId"`
	AuthToken string `json:"authToken"`
}

// SessionResult is the session status document
type SessionResult struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Results   struct {
		Attempts []Attempt `json:"attempts"`
	} `json:"results"`
}

// Attempt is one client attempt at the liveness check
type Attempt struct {
	AttemptID     int            `json:"attemptId"`
	AttemptStatus string         `json:"attemptStatus"`
	Result        *AttemptResult `json:"result"`
}

// AttemptResult holds the decisions of an attempt
type AttemptResult struct {
	LivenessDecision string        `json:"livenessDecision"`
	SessionImageID   string        `json:"sessionImageId"`
	VerifyResult     *VerifyResult `json:"verifyResult"`
}

// VerifyResult is the face match against the reference image
type VerifyResult struct {
	MatchConfidence float64 `json:"matchConfidence"`
	IsIdentical     *bool   `json:"isIdentical"`
}

// FirstResult returns the result of the first attempt, nil when there is none
func (s SessionResult) FirstResult() *AttemptResult {
	if len(s.Results.Attempts) == 0 {
		return nil
	}
	return s.Results.Attempts[0].Result
}

type shortLink struct {
	URL string `json:"url"`
}

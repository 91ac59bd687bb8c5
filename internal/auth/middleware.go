package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

type contextKey struct{}

var viewerKey contextKey

// WithViewer returns a context carrying the resolved viewer identity.
func WithViewer(ctx context.Context, v bidding.ViewerIdentity) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFrom returns the viewer identity stored in the context, or the
// anonymous identity when none was attached.
func ViewerFrom(ctx context.Context) bidding.ViewerIdentity {
	if v, ok := ctx.Value(viewerKey).(bidding.ViewerIdentity); ok {
		return v
	}
	return bidding.AnonymousViewer()
}

// Middleware resolves the bearer token on each request into a
// bidding.ViewerIdentity and stores it in the request context. Requests
// without a token proceed as the anonymous viewer; per-operation handlers
// decide whether anonymous access is allowed. A token that is present but
// invalid is rejected outright.
type Middleware struct {
	secret     string
	candidates bidding.CandidateRepository
	employers  bidding.EmployerRepository
	log        *zap.Logger
}

// NewMiddleware returns a configured Middleware.
func NewMiddleware(secret string, candidates bidding.CandidateRepository, employers bidding.EmployerRepository, log *zap.Logger) *Middleware {
	return &Middleware{secret: secret, candidates: candidates, employers: employers, log: log}
}

// Handler is the chi-compatible middleware function.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), bidding.AnonymousViewer())))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, `{"error":"malformed authorization header"}`, http.StatusUnauthorized)
			return
		}

		userID, err := ValidateToken(strings.TrimSpace(tokenString), m.secret)
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}

		viewer, err := m.resolve(r.Context(), userID)
		if err != nil {
			m.log.Error("viewer resolution failed", zap.String("userId", userID), zap.Error(err))
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
	})
}

// resolve looks up the candidate and employer profiles owned by the user. A
// valid token with no profile still yields an authenticated identity; such
// viewers see exactly what anonymous viewers see.
func (m *Middleware) resolve(ctx context.Context, userID string) (bidding.ViewerIdentity, error) {
	viewer := bidding.ViewerIdentity{Authenticated: true, UserID: userID}

	candidate, err := m.candidates.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		viewer.CandidateID = candidate.ID
	case !bidding.IsNotFound(err):
		return bidding.ViewerIdentity{}, err
	}

	employer, err := m.employers.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		viewer.EmployerID = employer.ID
		viewer.EmployerVisibility = employer.VisibilityMode
	case !bidding.IsNotFound(err):
		return bidding.ViewerIdentity{}, err
	}

	return viewer, nil
}

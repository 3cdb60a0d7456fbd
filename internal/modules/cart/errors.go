package cart

import (
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/shared/apierr"
)

type errKind int

const (
	kindVerification errKind = iota
	kindUnauthenticated
	kindGeneric
)

// classify maps a failed backend call onto the message the shopper sees:
// verification-required beats unauthenticated beats everything else.
func (e *Engine) classify(err error, loginMsg, fallback string) (string, errKind) {
	switch {
	case apierr.NeedsVerification(err):
		return MsgVerificationRequired, kindVerification
	case apierr.IsUnauthenticated(err):
		return loginMsg, kindUnauthenticated
	default:
		if ae, ok := apierr.As(err); ok && ae.Message != "" {
			return ae.Message, kindGeneric
		}
		return fallback, kindGeneric
	}
}

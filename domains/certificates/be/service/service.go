package service

import (
	"fmt"
	"strings"
)

// ValidationError reports an unknown certificate kind or missing id.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// Certificate kinds generated by the PDF backend, keyed by record id.
const (
	KindOwnerCertificate = "owner-certificate"
	KindBFPCertificate   = "bfp-certificate"
	KindInspectionOrder  = "inspection-order"
	KindReinspection     = "reinspection"
	KindNFSINotice       = "nfsi-notice"
)

// Kinds lists every supported certificate kind.
var Kinds = []string{
	KindOwnerCertificate,
	KindBFPCertificate,
	KindInspectionOrder,
	KindReinspection,
	KindNFSINotice,
}

// Service builds the per-record PDF endpoint URLs served by the external
// document backend. Generation itself happens there; this only produces the
// links the UI points at.
type Service struct {
	baseURL string
}

// New constructs a Service rooted at the PDF backend base URL.
func New(baseURL string) *Service {
	if strings.TrimSpace(baseURL) == "" {
		panic("certificates base url is required")
	}
	return &Service{baseURL: strings.TrimRight(baseURL, "/")}
}

// BuildURL returns the PDF endpoint for the given certificate kind and record.
func (s *Service) BuildURL(kind, recordID string) (string, error) {
	if strings.TrimSpace(recordID) == "" {
		return "", &ValidationError{Reason: "record id is required"}
	}
	if !validKind(kind) {
		return "", &ValidationError{Reason: fmt.Sprintf("unknown certificate kind %q", kind)}
	}
	return fmt.Sprintf("%s/pdf/%s/%s", s.baseURL, kind, recordID), nil
}

func validKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

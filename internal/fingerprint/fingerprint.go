// Package fingerprint derives the content fingerprints used as cache keys.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"

	"docverify/internal/domain"
)

// absentPacking encodes "no packing list" in the workflow fingerprint input.
// It is not hex, so it never equals a document fingerprint.
const absentPacking = "<none>"

// Of returns the SHA-256 fingerprint of a document's bytes.
func Of(content []byte) (domain.Fingerprint, error) {
	if len(content) == 0 {
		return "", domain.ErrHashingFailed
	}
	sum := sha256.Sum256(content)
	return domain.Fingerprint(hex.EncodeToString(sum[:])), nil
}

// Key pairs a fingerprint with the role the document was submitted under.
func Key(fp domain.Fingerprint, kind domain.DocumentKind) domain.DocumentCacheKey {
	return domain.DocumentCacheKey{Fingerprint: fp, Kind: kind}
}

// Workflow derives the composite fingerprint of a BL/invoice/packing set.
// Role assignment is part of the input: swapping BL and invoice changes the result.
func Workflow(bl, invoice domain.Fingerprint, packing domain.PackingRef) domain.WorkflowFingerprint {
	pk := absentPacking
	if fp, ok := packing.Get(); ok {
		pk = string(fp)
	}
	h := sha256.New()
	h.Write([]byte("bl=" + string(bl)))
	h.Write([]byte("|invoice=" + string(invoice)))
	h.Write([]byte("|packing=" + pk))
	return domain.WorkflowFingerprint(hex.EncodeToString(h.Sum(nil)))
}

// Set holds the fingerprints of one submitted workflow.
type Set struct {
	BL       domain.Fingerprint
	Invoice  domain.Fingerprint
	Packing  domain.PackingRef
	Workflow domain.WorkflowFingerprint
}

// Keys returns the document cache keys of the set in workflow order.
func (s Set) Keys() []domain.DocumentCacheKey {
	keys := []domain.DocumentCacheKey{
		Key(s.BL, domain.DocumentKindBL),
		Key(s.Invoice, domain.DocumentKindInvoice),
	}
	if fp, ok := s.Packing.Get(); ok {
		keys = append(keys, Key(fp, domain.DocumentKindPacking))
	}
	return keys
}

// Compute fingerprints bl, invoice and the optional packing list.
func Compute(bl, invoice []byte, packing []byte, hasPacking bool) (Set, error) {
	var s Set
	var err error
	if s.BL, err = Of(bl); err != nil {
		return Set{}, err
	}
	if s.Invoice, err = Of(invoice); err != nil {
		return Set{}, err
	}
	s.Packing = domain.NoPacking()
	if hasPacking {
		fp, err := Of(packing)
		if err != nil {
			return Set{}, err
		}
		s.Packing = domain.SomePacking(fp)
	}
	s.Workflow = Workflow(s.BL, s.Invoice, s.Packing)
	return s, nil
}

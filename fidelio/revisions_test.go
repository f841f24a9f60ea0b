// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fidelio

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRevision_KnownRevisionsAreTotallyOrdered(t *testing.T) {
	revisions := GetAllKnownRevisions()
	if len(revisions) == 0 {
		t.Fatal("expected at least one known revision")
	}
	for i := 1; i < len(revisions); i++ {
		if revisions[i-1] >= revisions[i] {
			t.Errorf("revisions out of order: %v before %v", revisions[i-1], revisions[i])
		}
	}
	if want, got := R00_Frontier, revisions[0]; want != got {
		t.Errorf("expected the oldest revision to be %v, got %v", want, got)
	}
	if want, got := R10_London, revisions[len(revisions)-1]; want != got {
		t.Errorf("expected the newest revision to be %v, got %v", want, got)
	}
}

func TestRevision_AllKnownRevisionsHaveNames(t *testing.T) {
	for _, revision := range GetAllKnownRevisions() {
		if strings.HasPrefix(revision.String(), "Revision(") {
			t.Errorf("missing name for revision %d", int(revision))
		}
	}
	if want, got := "Revision(99)", Revision(99).String(); want != got {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRevision_JsonRoundTrip(t *testing.T) {
	for _, revision := range GetAllKnownRevisions() {
		encoded, err := json.Marshal(revision)
		if err != nil {
			t.Fatalf("failed to marshal %v: %v", revision, err)
		}
		var restored Revision
		if err := json.Unmarshal(encoded, &restored); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", encoded, err)
		}
		if restored != revision {
			t.Errorf("expected %v, got %v", revision, restored)
		}
	}
}

func TestRevision_UnknownRevisionsAreNotMarshaled(t *testing.T) {
	if _, err := json.Marshal(Revision(99)); err == nil {
		t.Error("expected marshaling an unknown revision to fail")
	}
}

func TestRevision_UnknownNamesAreNotUnmarshaled(t *testing.T) {
	var revision Revision
	if err := json.Unmarshal([]byte(`"MuirGlacier"`), &revision); err == nil {
		t.Error("expected unmarshaling an unknown revision name to fail")
	}
}

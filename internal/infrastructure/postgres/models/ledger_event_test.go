package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Share dedup must not depend on the SQL migrations having run, so the
// partial unique admission key has to be declared on the model as well.
func TestLedgerEventModel_DeclaresShareAdmissionKey(t *testing.T) {
	modelType := reflect.TypeOf(LedgerEventModel{})

	indexed := map[string]bool{}
	whereDeclared := false
	for i := 0; i < modelType.NumField(); i++ {
		tag := modelType.Field(i).Tag.Get("gorm")
		if !strings.Contains(tag, "uniqueIndex:idx_share_admission_key") {
			continue
		}
		indexed[modelType.Field(i).Name] = true
		if strings.Contains(tag, "where:kind = 'SHARE'") {
			whereDeclared = true
		}
	}

	for _, field := range []string{"SiteID", "ActorID", "Platform", "BucketStart"} {
		assert.True(t, indexed[field], "field %s is not part of the admission key", field)
	}
	assert.True(t, whereDeclared, "admission key must only cover shares")
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewActivityDefaultsMetadata(t *testing.T) {
	activity := NewActivity("member-1", "github", ActivityTypeCommit, time.Now(), nil, nil)

	assert.NotNil(t, activity.Metadata)
	assert.NotEmpty(t, activity.ID)
	assert.Nil(t, activity.ActivityID)
}

func TestMetadataAccessors(t *testing.T) {
	activity := NewActivity("member-1", "github", ActivityTypeCommit, time.Now(), map[string]interface{}{
		"repository": "teampulse",
		"additions":  float64(42), // JSON numbers decode as float64
		"deletions":  7,
	}, nil)

	assert.Equal(t, "teampulse", activity.MetadataString("repository"))
	assert.Equal(t, 42, activity.MetadataInt("additions"))
	assert.Equal(t, 7, activity.MetadataInt("deletions"))

	// Absent or mistyped fields degrade to zero values
	assert.Equal(t, "", activity.MetadataString("missing"))
	assert.Equal(t, 0, activity.MetadataInt("repository"))
}

func TestMetadataStrings(t *testing.T) {
	activity := NewActivity("member-1", "github", ActivityTypeCommit, time.Now(), map[string]interface{}{
		"files":   []string{"main.go", "sync.go"},
		"decoded": []interface{}{"a.go", "b.go", 3}, // JSON arrays decode as []interface{}
		"title":   "not a list",
	}, nil)

	assert.Equal(t, []string{"main.go", "sync.go"}, activity.MetadataStrings("files"))
	assert.Equal(t, []string{"a.go", "b.go"}, activity.MetadataStrings("decoded"))
	assert.Nil(t, activity.MetadataStrings("title"))
	assert.Nil(t, activity.MetadataStrings("missing"))
}

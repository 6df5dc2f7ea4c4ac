package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL_CustomEndpoint(t *testing.T) {
	c := &Client{bucket: "gatherly-images", endpoint: "minio:9000", useSSL: false}

	url := c.objectURL("events/event-1/photo.png")

	assert.Equal(t, "http://minio:9000/gatherly-images/events/event-1/photo.png", url)
}

func TestObjectURL_AWS(t *testing.T) {
	c := &Client{bucket: "gatherly-images", region: "eu-central-1"}

	url := c.objectURL("events/event-1/photo.png")

	assert.Equal(t, "https://gatherly-images.s3.eu-central-1.amazonaws.com/events/event-1/photo.png", url)
}

func TestKeyFromURL_RoundTrip(t *testing.T) {
	clients := []*Client{
		{bucket: "gatherly-images", endpoint: "minio:9000", useSSL: true},
		{bucket: "gatherly-images", region: "us-east-1"},
		{bucket: "gatherly-images"},
	}
	key := "events/event-1/cover.jpg"

	for _, c := range clients {
		assert.Equal(t, key, c.KeyFromURL(c.objectURL(key)))
	}
}

func TestKeyFromURL_ForeignURL(t *testing.T) {
	c := &Client{bucket: "gatherly-images", endpoint: "minio:9000"}

	assert.Equal(t, "", c.KeyFromURL("https://example.com/not-ours.png"))
	assert.Equal(t, "", c.KeyFromURL("http://minio:9000/other-bucket/key.png"))
}

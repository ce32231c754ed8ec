package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total posts created",
		},
	)
	CommentsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_added_total",
			Help: "Total comments added",
		},
	)
	PostViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "post_views_total",
			Help: "Total registered post views",
		},
	)
	ImageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Image upload attempts by outcome",
		},
		[]string{"status"}, // ok|rejected|failed
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(PostsCreated)
	prometheus.MustRegister(CommentsAdded)
	prometheus.MustRegister(PostViews)
	prometheus.MustRegister(ImageUploads)
}

// Package handler exposes the API as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	"stayengine/config"
	"stayengine/di"
	"stayengine/shared/logger"
	stayhttp "stayengine/transport/http"
)

var (
	once    sync.Once
	service *stayhttp.HTTP
)

// Handler builds the service on the first invocation and reuses it while the instance is warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	service.ServeHTTP(w, r)
}

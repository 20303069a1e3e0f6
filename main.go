package main

import "net/http"

func main() {
	config := MustLoadConfig()
	registry := NewRegistry()
	relay := NewRelay(registry, config.WinScore)
	handler := NewHTTPServer(relay, config.StaticDir)
	LogStartedServer(config.Port)
	http.ListenAndServe(":"+config.Port, handler)
}

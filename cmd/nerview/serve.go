package main

import (
	"fmt"

	nvhttp "github.com/fwojciec/nerview/http"
)

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := nvhttp.NewServer()
	s.Addr = c.Addr
	s.CorsOrigins = c.CorsOrigins
	s.Documents = deps.Documents
	s.Extractor = deps.Extractor
	s.Resolver = deps.Resolver
	s.Converter = deps.Converter
	s.Metrics = deps.Metrics
	if deps.Logger != nil {
		s.Logger = deps.Logger
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	return s.Close()
}

package server

// Server bundles the entity-specific HTTP servers of the pipeline.
type Server struct {
	PipelineServer
}

func NewServer(pipelineServer PipelineServer) Server {
	return Server{
		PipelineServer: pipelineServer,
	}
}

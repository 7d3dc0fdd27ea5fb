package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/bbtree/knapsack"
	"github.com/katalvlaran/bbtree/render"
	"github.com/katalvlaran/bbtree/trace"
)

// AttachmentName is the download name stem of /generate-pdf responses.
const AttachmentName = "knapsack_tree"

// built is a validated request and its search tree.
type built struct {
	weights, values []int64
	capacity        int64
	tree            *knapsack.Tree
	rec             *trace.Recorder
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "OK",
		Message:  "Server is running",
		Graphviz: s.opts.Renderer.Graphviz.Available(),
	})
}

// handleGenerate renders the tree and returns it as an attachment.
//
// Query: format=pdf|svg|png|dot|json|text (default from Options).
//
// Response:
//
//	200 OK: file body
//	400 Bad Request: validation error
//	429 Too Many Requests: rate limited
//	502 Bad Gateway: graphviz failed
//	503 Service Unavailable: graphviz not installed
func (s *Server) handleGenerate(c *gin.Context) {
	format := s.opts.DefaultFormat
	if q := c.Query("format"); q != "" {
		f, err := render.ParseFormat(q)
		if err != nil {
			s.fail(c, http.StatusBadRequest, CodeInvalidFormat, resultInvalid, err)
			return
		}
		format = f
	}
	if format.External() && !s.opts.Renderer.Graphviz.Available() {
		s.fail(c, http.StatusServiceUnavailable, CodeRendererUnavailable, resultRendererUnavailable,
			render.ErrGraphvizNotFound)
		return
	}

	b, ok := s.build(c)
	if !ok {
		return
	}

	start := time.Now()
	body, err := s.opts.Renderer.Bytes(c.Request.Context(), b.rec, format)
	renderDuration.WithLabelValues(format.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, render.ErrGraphvizNotFound) {
			s.fail(c, http.StatusServiceUnavailable, CodeRendererUnavailable, resultRendererUnavailable, err)
			return
		}
		s.fail(c, http.StatusBadGateway, CodeRenderFailed, resultRenderFailed, err)
		return
	}

	treeBuilds.WithLabelValues(resultOK).Inc()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, AttachmentName, format.Ext()))
	c.Data(http.StatusOK, format.ContentType(), body)
}

// handleTrees returns the trace document, statistics and best selection.
func (s *Server) handleTrees(c *gin.Context) {
	b, ok := s.build(c)
	if !ok {
		return
	}
	sol, _ := b.tree.Solution()

	treeBuilds.WithLabelValues(resultOK).Inc()
	c.JSON(http.StatusOK, TreeResponse{
		RequestID: getRequestID(c),
		Weights:   b.weights,
		Values:    b.values,
		Capacity:  b.capacity,
		Stats:     b.tree.Stats(),
		Solution:  sol,
		Trace:     trace.NewDocument(b.rec),
	})
}

// build binds, validates and builds. On failure the response is written and
// ok is false.
func (s *Server) build(c *gin.Context) (*built, bool) {
	// 1. Bind and validate the body
	var req TreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidRequest, resultInvalid, err)
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidRequest, resultInvalid,
			fmt.Errorf("both number lines are required and must hold integers: %w", err))
		return nil, false
	}
	weights, values, capacity, err := req.Parse()
	if err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidRequest, resultInvalid, err)
		return nil, false
	}

	// 2. Enforce the size limit before building
	if len(weights) > s.opts.MaxItems || len(values) > s.opts.MaxItems {
		s.fail(c, http.StatusBadRequest, CodeTooManyItems, resultTooLarge,
			fmt.Errorf("at most %d items are accepted", s.opts.MaxItems))
		return nil, false
	}

	// 3. Build
	inst, err := knapsack.New(weights, values, capacity)
	if err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidInstance, resultInvalid, err)
		return nil, false
	}
	rec := trace.NewRecorder(1 << (min(len(weights), 11) + 1))
	tree, err := knapsack.Build(inst, knapsack.WithSink(rec))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, CodeInternal, resultInvalid, err)
		return nil, false
	}
	treeNodes.Observe(float64(tree.Len()))

	s.log.Debug().
		Str("request_id", getRequestID(c)).
		Int("items", inst.Len()).
		Int64("capacity", capacity).
		Int("nodes", tree.Len()).
		Msg("tree built")

	return &built{weights: weights, values: values, capacity: capacity, tree: tree, rec: rec}, true
}

func (s *Server) fail(c *gin.Context, status int, code, result string, err error) {
	treeBuilds.WithLabelValues(result).Inc()
	s.log.Warn().Str("request_id", getRequestID(c)).Str("code", code).Err(err).Msg("request failed")
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

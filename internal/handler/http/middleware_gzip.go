package http

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		w := gzip.NewWriter(nil)
		return w
	},
}

// withGZip compresses response bodies for clients that accept gzip. The
// compressor is only engaged once the handler writes body bytes, so
// redirects and empty responses go out untouched.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		supportsGzip := strings.Contains(req.Header.Get("Accept-Encoding"), "gzip")
		if !supportsGzip || req.Method == http.MethodHead {
			next.ServeHTTP(w, req)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")
		gzipRW := &gzipResponseWriter{ResponseWriter: w}

		next.ServeHTTP(gzipRW, req)

		gzipRW.finish()
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer

	status      int
	wroteHeader bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if w.gzipWriter == nil {
		if w.status == 0 {
			w.status = http.StatusOK
		}
		if !bodyAllowed(w.status) || w.Header().Get("Content-Encoding") != "" {
			w.flushHeader()
			return w.ResponseWriter.Write(data)
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.flushHeader()

		w.gzipWriter = gzipWriterPool.Get().(*gzip.Writer)
		w.gzipWriter.Reset(w.ResponseWriter)
	}
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) flushHeader() {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(w.status)
}

// finish sends a header-only response that never wrote a body and returns
// the compressor to the pool.
func (w *gzipResponseWriter) finish() {
	if w.gzipWriter != nil {
		w.gzipWriter.Close()
		gzipWriterPool.Put(w.gzipWriter)
		w.gzipWriter = nil
		return
	}
	if w.status != 0 {
		w.flushHeader()
	}
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

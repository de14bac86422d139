package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/vfs"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	errUploadTooLarge = fmt.Errorf("upload exceeds %d bytes", utils.MaxUploadSize)
)

// Upload stores a multipart "file" as a new item under the "parentId" form
// field. Text is stored as UTF-8 text; everything else as a data URI.
func (h *Handlers) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxUploadSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errUploadTooLarge.Error()})
			return
		}
		badRequest(c, fmt.Errorf("file is required: %w", err))
		return
	}

	d := desk(c)
	parentID := types.Parent(c.PostForm("parentId"))
	if !h.validParent(c, d, parentID) {
		return
	}

	f, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	data, err := readLimited(f, utils.MaxUploadSize)
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}

	name := utils.SanitizeName(header.Filename)
	if utils.ValidateName(name, "name") != nil {
		name = "upload"
	}

	content, mime, err := EncodeUpload(data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	item := d.Files.CreateFile(name, content, parentID)
	h.logger.Debug("File uploaded", zap.String("item_id", item.ID), zap.String("mime", mime), zap.Int("bytes", len(data)))
	c.JSON(http.StatusCreated, gin.H{"item": item, "detectedMime": mime})
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}

// EncodeUpload turns raw upload bytes into item content. The mime type is
// sniffed from the bytes; text in a legacy charset is converted to UTF-8
// and binary data becomes a base64 data URI.
func EncodeUpload(data []byte) (content, mime string, err error) {
	mime, _, _ = strings.Cut(mimetype.Detect(data).String(), ";")
	mime = strings.TrimSpace(mime)

	if !strings.HasPrefix(mime, "text/") {
		return vfs.EncodeDataURI(mime, data), mime, nil
	}

	text, err := toUTF8(data)
	if err != nil {
		return "", mime, err
	}
	return text, mime, nil
}

// toUTF8 decodes text of unknown charset
func toUTF8(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", fmt.Errorf("unknown text encoding: %w", err)
	}
	enc, _ := charset.Lookup(result.Charset)
	if enc == nil {
		return "", fmt.Errorf("unsupported text encoding %s", result.Charset)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", result.Charset, err)
	}
	return string(decoded), nil
}

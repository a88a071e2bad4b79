package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UploadHandler struct {
	cloudinaryURL string
	folder        string
	log           *zap.Logger
}

func NewUploadHandler(cloudinaryURL, folder string, log *zap.Logger) *UploadHandler {
	return &UploadHandler{cloudinaryURL: cloudinaryURL, folder: folder, log: log}
}

// GenerateUploadSignature signs a direct browser upload of an avatar to Cloudinary.
func (h *UploadHandler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.cloudinaryURL == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Uploads are not configured"})
	}
	cld, err := cloudinary.NewFromURL(h.cloudinaryURL)
	if err != nil {
		h.log.Error("failed to initialize Cloudinary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize uploads"})
	}

	parsedURL, err := url.Parse(h.cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize uploads"})
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: h.folder})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare signature params"})
	}
	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"signature":  signature,
		"timestamp":  timestamp,
		"api_key":    cld.Config.Cloud.APIKey,
		"cloud_name": cld.Config.Cloud.CloudName,
		"folder":     h.folder,
	})
}

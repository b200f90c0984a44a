package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const cloudinaryAPI = "https://api.cloudinary.com/v1_1"

type CloudinaryOptions struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	// BaseURL overrides the Cloudinary API root.
	BaseURL string
}

// CloudinaryStore sends images to the Cloudinary signed upload endpoint.
type CloudinaryStore struct {
	client *resty.Client
	opts   CloudinaryOptions
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
}

type cloudinaryErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewCloudinaryStore(opts CloudinaryOptions) (*CloudinaryStore, error) {
	if opts.CloudName == "" || opts.APIKey == "" || opts.APISecret == "" {
		return nil, fmt.Errorf("storage/cloudinary: cloud name, api key and api secret are required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = cloudinaryAPI
	}
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	return &CloudinaryStore{client: client, opts: opts}, nil
}

func (s *CloudinaryStore) Driver() string { return DriverCloudinary }

func (s *CloudinaryStore) Upload(ctx context.Context, filename, _ string, body io.Reader) (string, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	if s.opts.Folder != "" {
		params["folder"] = s.opts.Folder
	}

	form := map[string]string{
		"api_key":   s.opts.APIKey,
		"signature": signParams(params, s.opts.APISecret),
	}
	for k, v := range params {
		form[k] = v
	}

	var result cloudinaryUploadResponse
	var apiErr cloudinaryErrorResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, body).
		SetFormData(form).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(s.opts.BaseURL, "/"), s.opts.CloudName))
	if err != nil {
		return "", fmt.Errorf("storage/cloudinary: upload %s: %w", filename, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage/cloudinary: upload %s failed with status %d: %s", filename, resp.StatusCode(), apiErr.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage/cloudinary: upload %s: secure_url missing from response", filename)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, url string) error {
	publicID, err := cloudinaryPublicID(url)
	if err != nil {
		return err
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	form := map[string]string{
		"api_key":   s.opts.APIKey,
		"signature": signParams(params, s.opts.APISecret),
	}
	for k, v := range params {
		form[k] = v
	}

	var result cloudinaryDestroyResponse
	var apiErr cloudinaryErrorResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("%s/%s/image/destroy", strings.TrimRight(s.opts.BaseURL, "/"), s.opts.CloudName))
	if err != nil {
		return fmt.Errorf("storage/cloudinary: destroy %s: %w", publicID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("storage/cloudinary: destroy %s failed with status %d: %s", publicID, resp.StatusCode(), apiErr.Error.Message)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("storage/cloudinary: destroy %s: unexpected result %q", publicID, result.Result)
	}
	return nil
}

// cloudinaryPublicID extracts the public id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/aroena/room.jpg.
func cloudinaryPublicID(url string) (string, error) {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok || rest == "" {
		return "", fmt.Errorf("storage/cloudinary: %s is not a delivery url", url)
	}
	if version, after, found := strings.Cut(rest, "/"); found && isVersionSegment(version) {
		rest = after
	}
	if ext := path.Ext(rest); ext != "" {
		rest = strings.TrimSuffix(rest, ext)
	}
	if rest == "" {
		return "", fmt.Errorf("storage/cloudinary: %s is not a delivery url", url)
	}
	return rest, nil
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	_, err := strconv.ParseUint(segment[1:], 10, 64)
	return err == nil
}

// signParams implements Cloudinary's request signature: the parameters sorted
// by name, joined as k=v with '&', suffixed with the secret and SHA-1 hashed.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	appcfg "catalog_admin/internal/config"
	"catalog_admin/pkg/errs"
)

// ==================== 接口定义 ====================

// Upload 待保存的图片
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStorage 图片存储
// 引用 (ref) 为对象 key: yyyy/mm/dd/<uuid>.<ext>
type ImageStorage interface {
	// Save 保存图片返回引用；u 为 nil 时返回空引用
	Save(ctx context.Context, u *Upload) (string, error)

	// Update 保存新图片并删除旧图片；u 为 nil 时原样返回 prev
	Update(ctx context.Context, u *Upload, prev string) (string, error)

	// Delete 删除图片；空引用或文件不存在都不报错
	Delete(ctx context.Context, ref string) error

	// URL 引用转公开访问地址
	URL(ref string) string
}

// ==================== 工厂方法 ====================

func NewImageStorage(cfg appcfg.StorageConfig) (ImageStorage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg), nil
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// NewUploadFromFile 读取表单上传的文件，fh 为 nil 时返回 nil
func NewUploadFromFile(fh *multipart.FileHeader) (*Upload, error) {
	if fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: 打开上传文件失败: %v", errs.ErrValidation, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取上传文件失败: %v", errs.ErrValidation, err)
	}
	return newImageUpload(fh.Filename, fh.Header.Get("Content-Type"), data)
}

// newImageUpload 按内容嗅探类型，只接受图片
func newImageUpload(filename, contentType string, data []byte) (*Upload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 图片内容为空", errs.ErrValidation)
	}
	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return nil, fmt.Errorf("%w: 不是图片文件 (%s)", errs.ErrValidation, sniffed)
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = sniffed
	}
	return &Upload{Filename: filename, ContentType: contentType, Data: data}, nil
}

// replaceImage 先存新图再删旧图，删除失败时把新图也回收
func replaceImage(ctx context.Context, s ImageStorage, u *Upload, prev string) (string, error) {
	if u == nil {
		return prev, nil
	}
	ref, err := s.Save(ctx, u)
	if err != nil {
		return "", err
	}
	if err := s.Delete(ctx, prev); err != nil {
		_ = s.Delete(ctx, ref)
		return "", err
	}
	return ref, nil
}

func generateKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01/02"), uuid.New().String(), ext)
}

// cleanKey 拒绝逃出存储目录的引用
func cleanKey(ref string) (string, error) {
	key := path.Clean(strings.TrimPrefix(ref, "/"))
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return "", fmt.Errorf("%w: 非法的图片引用 %q", errs.ErrStorage, ref)
	}
	return key, nil
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ==================== 本地存储 ====================

// LocalStorage 写入 base_path，经 /uploads 对外提供
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg appcfg.StorageConfig) *LocalStorage {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalStorage) Save(ctx context.Context, u *Upload) (string, error) {
	if u == nil {
		return "", nil
	}
	key := generateKey(u.Filename)
	full := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("%w: 创建目录失败: %v", errs.ErrStorage, err)
	}
	if err := os.WriteFile(full, u.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: 写入文件失败: %v", errs.ErrStorage, err)
	}
	return key, nil
}

func (s *LocalStorage) Update(ctx context.Context, u *Upload, prev string) (string, error) {
	return replaceImage(ctx, s, u, prev)
}

func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	if ref == "" || isAbsoluteURL(ref) {
		return nil
	}
	key, err := cleanKey(ref)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: 删除文件失败: %v", errs.ErrStorage, err)
	}
	return nil
}

func (s *LocalStorage) URL(ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	return s.baseURL + "/" + strings.TrimPrefix(ref, "/")
}

// Root 本地文件根目录，供静态路由使用
func (s *LocalStorage) Root() string {
	return s.basePath
}

// ==================== S3 实现 ====================

// s3API S3Storage 用到的客户端方法
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage S3 或兼容 S3 协议的对象存储 (MinIO, COS 等)
type S3Storage struct {
	client    s3API
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
}

func NewS3Storage(cfg appcfg.StorageConfig) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3StorageWithClient(client, cfg), nil
}

func newS3StorageWithClient(client s3API, cfg appcfg.StorageConfig) *S3Storage {
	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		cdnDomain: cfg.CDNDomain,
	}
}

func (s *S3Storage) Save(ctx context.Context, u *Upload) (string, error) {
	if u == nil {
		return "", nil
	}
	key := generateKey(u.Filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(u.Data),
		ContentType: aws.String(u.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: 上传S3失败: %v", errs.ErrStorage, err)
	}
	return key, nil
}

func (s *S3Storage) Update(ctx context.Context, u *Upload, prev string) (string, error) {
	return replaceImage(ctx, s, u, prev)
}

// Delete S3 删除不存在的 key 本身就是成功
func (s *S3Storage) Delete(ctx context.Context, ref string) error {
	if ref == "" || isAbsoluteURL(ref) {
		return nil
	}
	key, err := cleanKey(ref)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: 删除S3对象失败: %v", errs.ErrStorage, err)
	}
	return nil
}

func (s *S3Storage) URL(ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	switch {
	case s.cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, ref)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, ref)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, ref)
	}
}

// ==================== 远程图片 ====================

// MaxRemoteImageBytes 远程图片大小上限
const MaxRemoteImageBytes = 10 << 20

// RemoteFetcher 按 image_url 下载图片
type RemoteFetcher struct {
	client   *resty.Client
	maxBytes int64
}

func NewRemoteFetcher(timeout time.Duration) *RemoteFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Catalog-Admin/1.0")
	return &RemoteFetcher{client: client, maxBytes: MaxRemoteImageBytes}
}

// Fetch 下载失败、超过大小上限或内容不是图片时返回 ErrValidation
func (f *RemoteFetcher) Fetch(ctx context.Context, rawURL string) (*Upload, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: 下载图片失败: %v", errs.ErrValidation, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("%w: 下载图片失败: HTTP %d", errs.ErrValidation, resp.StatusCode())
	}
	if resp.RawResponse.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: 图片超过 %d 字节", errs.ErrValidation, f.maxBytes)
	}

	// Content-Length 可能缺失或不实，多读一个字节判断是否超限
	data, err := io.ReadAll(io.LimitReader(body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取图片失败: %v", errs.ErrValidation, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: 图片超过 %d 字节", errs.ErrValidation, f.maxBytes)
	}

	filename := "remote.jpg"
	if parsed, err := url.Parse(rawURL); err == nil {
		if base := path.Base(parsed.Path); base != "." && base != "/" {
			filename = base
		}
	}
	return newImageUpload(filename, resp.Header().Get("Content-Type"), data)
}

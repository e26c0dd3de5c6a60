// Package fakes holds in-memory stand-ins for the object storage and mail
// adapters, used by service and handler tests.
package fakes

import (
	"foodgram/internal/utils/storage"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
)

const LinkPrefix = "http://media.test/"

type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string][]byte{}}
}

func allowedExt(ext string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return nil
		}
	}
	return storage.ErrExtensionNotAllowed
}

func (s *Storage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if err := allowedExt(ext, allowed); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return s.put(folder+"/"+fileName+ext, data), nil
}

func (s *Storage) UploadBytes(fileName string, data []byte, folder string, allowed ...string) (string, error) {
	if err := allowedExt(strings.ToLower(filepath.Ext(fileName)), allowed); err != nil {
		return "", err
	}
	return s.put(folder+"/"+fileName, data), nil
}

func (s *Storage) put(key string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return key
}

func (s *Storage) DeleteFile(objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectKey)
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *Storage) Has(objectKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[objectKey]
	return ok
}

func (s *Storage) GetPublicLinkKey(objectKey string) string {
	return LinkPrefix + objectKey
}

func (s *Storage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, LinkPrefix) {
		return ""
	}
	return strings.TrimPrefix(link, LinkPrefix)
}

type Mail struct {
	To      string
	Subject string
	Body    string
}

type Mailer struct {
	mu   sync.Mutex
	Sent []Mail
	Err  error
}

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, Mail{To: toEmail, Subject: subject, Body: body})
	return nil
}

package workers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/flowblog/flowblog/domain"
	"github.com/sirupsen/logrus"
)

// revalidateWorker asks the website frontend to regenerate a post's page
// after an edit or delete. Requests are queued on a channel so the HTTP
// handler never waits on the webhook.
type revalidateWorker struct {
	websiteURL string
	secret     string
	client     *http.Client
	ch         chan string
}

var _ domain.Revalidator = (*revalidateWorker)(nil)

func NewRevalidateWorker(websiteURL, secret string) *revalidateWorker {
	return &revalidateWorker{
		websiteURL: websiteURL,
		secret:     secret,
		client:     &http.Client{Timeout: 10 * time.Second},
		ch:         make(chan string, 256),
	}
}

func (w *revalidateWorker) Notify(slug string) {
	select {
	case w.ch <- slug:
	default:
		logrus.Infof("revalidate queue is full, dropping notification for %q", slug)
	}
}

func (w *revalidateWorker) Start(ctx context.Context) {
	for {
		select {
		case slug := <-w.ch:
			w.revalidate(ctx, slug)
		case <-ctx.Done():
			logrus.Info("shutting down revalidate worker, flushing remaining notifications...")
			for {
				select {
				case slug := <-w.ch:
					w.revalidate(context.Background(), slug)
				default:
					return
				}
			}
		}
	}
}

func (w *revalidateWorker) revalidate(ctx context.Context, slug string) {
	endpoint := fmt.Sprintf("%s/api/revalidate-post/%s?secret=%s",
		w.websiteURL, url.PathEscape(slug), url.QueryEscape(w.secret))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.Errorf("failed to build revalidate request for %q: %v", slug, err)
		return
	}

	resp, err := w.client.Do(req)
	if err != nil {
		logrus.Errorf("revalidate request for %q failed: %v", slug, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("revalidate request for %q returned status %d", slug, resp.StatusCode)
	}
}

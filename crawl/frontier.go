package crawl

// SitemapFrontier is the FIFO queue of sitemap URLs waiting to be expanded,
// paired with the exact set of sitemaps already expanded. It belongs to a
// single Crawler and is not safe for concurrent use.
type SitemapFrontier struct {
	queue   []string
	head    int
	visited map[string]struct{}
}

// NewSitemapFrontier creates a frontier seeded with urls in order.
func NewSitemapFrontier(urls ...string) *SitemapFrontier {
	f := &SitemapFrontier{visited: make(map[string]struct{})}
	for _, u := range urls {
		f.Push(u)
	}
	return f
}

// Push appends url to the back of the queue. Duplicates are allowed and
// skipped at dequeue time through the visited set.
func (f *SitemapFrontier) Push(url string) {
	f.queue = append(f.queue, url)
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *SitemapFrontier) Pop() (string, bool) {
	if f.head >= len(f.queue) {
		return "", false
	}
	url := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 >= len(f.queue) {
		f.queue = append(f.queue[:0], f.queue[f.head:]...)
		f.head = 0
	}
	return url, true
}

// Len returns the number of queued URLs.
func (f *SitemapFrontier) Len() int {
	return len(f.queue) - f.head
}

// Visited reports whether url was already expanded.
func (f *SitemapFrontier) Visited(url string) bool {
	_, ok := f.visited[url]
	return ok
}

// MarkVisited records url as expanded. Marking is idempotent.
func (f *SitemapFrontier) MarkVisited(url string) {
	f.visited[url] = struct{}{}
}

// VisitedCount returns the number of distinct sitemaps expanded.
func (f *SitemapFrontier) VisitedCount() int {
	return len(f.visited)
}

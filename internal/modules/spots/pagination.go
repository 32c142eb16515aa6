package spots

import (
	"net/url"
	"strconv"
)

// buildListLinks produces self/first/prev/next/last references that repeat
// the caller's filter set with only the page number changed. prev and next
// are omitted at the boundaries; an out-of-range page still gets self/first/
// last so clients can recover.
func buildListLinks(path string, filters url.Values, page, pageSize int, total int64) ListLinks {
	last := int((total + int64(pageSize) - 1) / int64(pageSize))
	if last < 1 {
		last = 1
	}

	ref := func(p int) string {
		q := url.Values{}
		for k, vs := range filters {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(p))
		q.Set("page_size", strconv.Itoa(pageSize))
		return path + "?" + q.Encode()
	}

	links := ListLinks{
		Self:  ref(page),
		First: ref(1),
		Last:  ref(last),
	}
	if page > 1 {
		prev := ref(page - 1)
		links.Prev = &prev
	}
	if page < last {
		next := ref(page + 1)
		links.Next = &next
	}
	return links
}

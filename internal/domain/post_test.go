package domain

import "testing"

func TestPostStage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		post Post
		want Stage
	}{
		{name: "scraped", post: Post{Link: "a"}, want: StageScraped},
		{name: "draft", post: Post{PostContent: "x"}, want: StageDraft},
		{name: "approved", post: Post{PostContent: "x", Approved: true}, want: StageApproved},
		{name: "posted", post: Post{PostContent: "x", Approved: true, Posted: true}, want: StagePosted},
	}

	for _, tc := range cases {
		if got := tc.post.Stage(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestPostPublishable(t *testing.T) {
	t.Parallel()

	if (Post{Approved: true}).Publishable() {
		t.Fatalf("record without content must not be publishable")
	}
	if (Post{Approved: true, Posted: true, PostContent: "x"}).Publishable() {
		t.Fatalf("posted record must not be publishable")
	}
	if !(Post{Approved: true, PostContent: "x"}).Publishable() {
		t.Fatalf("approved draft must be publishable")
	}
}

func TestPostSetImage(t *testing.T) {
	t.Parallel()

	var p Post
	p.SetImage("img/1.jpg")
	if p.Image() != "img/1.jpg" {
		t.Fatalf("unexpected image: %q", p.Image())
	}
	p.SetImage("")
	if p.ImagePath != nil {
		t.Fatalf("expected nil image path")
	}
}

package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/activities/internal/adapters/http/api"
	"github.com/mergington/activities/internal/adapters/http/site"
	app "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// newTestServer wires the full HTTP surface the way cmd/main.go does.
func newTestServer() (*httptest.Server, *app.Service) {
	ctx := context.Background()
	svc := app.New(app.WithActivities(smallSeed()))
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	site.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	return httptest.NewServer(mux), svc
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s failed: %v", url, err)
		}
	}
	return resp
}

func TestServiceEndToEnd(t *testing.T) {
	Convey("Given a fully wired HTTP server", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		client := srv.Client()

		Convey("When a student signs up through the API", func() {
			req, _ := http.NewRequest(http.MethodPost,
				srv.URL+"/activities/Chess%20Club/signup?email=newstudent@mergington.edu", nil)
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the signup should succeed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})

			Convey("And the roster should reflect it on the next list", func() {
				activities := map[string]model.Activity{}
				getJSON(t, srv.URL+"/activities", &activities)
				So(activities["Chess Club"].HasParticipant("newstudent@mergington.edu"), ShouldBeTrue)
			})

			Convey("And unregistering through the API should remove it again", func() {
				del, _ := http.NewRequest(http.MethodDelete,
					srv.URL+"/activities/Chess%20Club/unregister?email=newstudent@mergington.edu", nil)
				delResp, delErr := client.Do(del)
				So(delErr, ShouldBeNil)
				defer delResp.Body.Close()
				So(delResp.StatusCode, ShouldEqual, http.StatusOK)

				activities := map[string]model.Activity{}
				getJSON(t, srv.URL+"/activities", &activities)
				So(activities["Chess Club"].HasParticipant("newstudent@mergington.edu"), ShouldBeFalse)
			})
		})

		Convey("When fetching the root", func() {
			noRedirect := &http.Client{
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					return http.ErrUseLastResponse
				},
			}
			resp, err := noRedirect.Get(srv.URL + "/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should redirect to the sign-up page", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusTemporaryRedirect)
				So(resp.Header.Get("Location"), ShouldEqual, "/static/index.html")
			})
		})

		Convey("When fetching stats", func() {
			stats := map[string]interface{}{}
			resp := getJSON(t, srv.URL+"/stats", &stats)

			Convey("Then the snapshot should be served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(stats["totalActivities"], ShouldEqual, float64(2))
			})
		})
	})
}

package lms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/coursedeck-app/coursedeck/pkg/communication"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"golang.org/x/oauth2"
)

// PageLimit is the fixed page size of all list requests. Only the first page
// is ever fetched; there is no pagination continuation.
const PageLimit = 200

const apiVersion = "1.0"

// ClientInterface is an interface for a *Client
type ClientInterface interface {
	Initialize(baseURL string, accessToken string)
	Reset()
	IsInitialized() bool
	BaseURL() string
	ValidateConnection(ctx context.Context) bool
	Courses(ctx context.Context) ([]Course, error)
	CourseAssignments(ctx context.Context, courseID string) ([]RemoteAssignment, error)
}

// Client talks to the LMS REST API. It starts uninitialized; all data
// operations fail closed until Initialize is called with credentials.
type Client struct {
	Logger logger.Interface

	baseURL    string
	httpClient *http.Client
}

// Initialize stores the connection settings and builds a bearer-token HTTP
// client. The base URL loses its trailing slash here.
func (c *Client) Initialize(baseURL string, accessToken string) {
	c.baseURL = strings.TrimRight(baseURL, "/")

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	c.httpClient = oauth2.NewClient(context.Background(), source)
}

// Reset drops the connection settings and returns the client to its
// uninitialized state
func (c *Client) Reset() {
	c.baseURL = ""
	c.httpClient = nil
}

// IsInitialized reports whether credentials have been set
func (c *Client) IsInitialized() bool {
	return c.baseURL != "" && c.httpClient != nil
}

// BaseURL returns the configured LMS root endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ValidateConnection issues a single identity check. Any transport failure or
// non-success status collapses to false; it never fails the caller.
func (c *Client) ValidateConnection(ctx context.Context) bool {
	if !c.IsInitialized() {
		return false
	}

	response, err := c.get(ctx, fmt.Sprintf("%s/d2l/api/lp/%s/users/whoami", c.baseURL, apiVersion))
	if err != nil {
		return false
	}
	defer response.Body.Close()

	return response.StatusCode >= 200 && response.StatusCode < 300
}

// Courses fetches the first page of the user's course enrollments. Network
// and decode failures collapse to an empty list; only the uninitialized state
// is an error.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	if !c.IsInitialized() {
		return nil, communication.ErrLMSNotInitialized
	}

	url := fmt.Sprintf("%s/d2l/api/lp/%s/enrollments/myenrollments/?roleId=0&limit=%d", c.baseURL, apiVersion, PageLimit)

	response, err := c.get(ctx, url)
	if err != nil {
		c.Logger.Warning("Could not fetch courses", err)
		return []Course{}, nil
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		c.Logger.Warning("Course list request was not successful", fmt.Errorf("status %d", response.StatusCode))
		return []Course{}, nil
	}

	var result enrollmentResponse
	err = json.NewDecoder(response.Body).Decode(&result)
	if err != nil {
		c.Logger.Warning("Could not decode course list", err)
		return []Course{}, nil
	}

	if result.Items == nil {
		return []Course{}, nil
	}

	return result.Items, nil
}

// CourseAssignments fetches the first page of a course's dropbox folders.
// Same failure contract as Courses.
func (c *Client) CourseAssignments(ctx context.Context, courseID string) ([]RemoteAssignment, error) {
	if !c.IsInitialized() {
		return nil, communication.ErrLMSNotInitialized
	}

	url := fmt.Sprintf("%s/d2l/api/le/%s/courses/%s/dropbox/folders/?limit=%d", c.baseURL, apiVersion, courseID, PageLimit)

	response, err := c.get(ctx, url)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("Could not fetch assignments for course %s", courseID), err)
		return []RemoteAssignment{}, nil
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		c.Logger.Warning(fmt.Sprintf("Assignment list request for course %s was not successful", courseID), fmt.Errorf("status %d", response.StatusCode))
		return []RemoteAssignment{}, nil
	}

	var result dropboxResponse
	err = json.NewDecoder(response.Body).Decode(&result)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("Could not decode assignment list for course %s", courseID), err)
		return []RemoteAssignment{}, nil
	}

	if result.Objects == nil {
		return []RemoteAssignment{}, nil
	}

	return result.Objects, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	return c.httpClient.Do(request)
}

// Package postal resolves Indian postal codes to an address so the profile
// form can fill state and address automatically. Lookups are best effort:
// every failure leaves the form for manual entry.
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

const DefaultBaseURL = "https://api.postalpincode.in"

// Address is the part of a post office record the form uses.
type Address struct {
	PostOffice string
	District   string
	State      string
}

// Line formats the address as "Name, District, State".
func (a Address) Line() string {
	return a.PostOffice + ", " + a.District + ", " + a.State
}

// Apply copies the address into the profile.
func (a Address) Apply(p *models.UserProfile) {
	p.State = a.State
	p.Address = a.Line()
}

// Applicable reports whether a lookup makes sense for the given country and
// code.
func Applicable(country, pincode string) bool {
	if !strings.EqualFold(strings.TrimSpace(country), "india") || len(pincode) != 6 {
		return false
	}
	for _, r := range pincode {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type postOffice struct {
	Name     string `json:"Name"`
	District string `json:"District"`
	State    string `json:"State"`
}

type lookupResponse struct {
	Status     string       `json:"Status"`
	Message    string       `json:"Message"`
	PostOffice []postOffice `json:"PostOffice"`
}

// Lookup returns the first post office for the code. It fails with
// common.ErrPincodeNotFound when the service knows no such code and with
// common.ErrLookupFailed on any transport or decoding problem.
func (c *Client) Lookup(ctx context.Context, pincode string) (Address, error) {
	endpoint := c.baseURL + "/pincode/" + url.PathEscape(pincode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", common.ErrLookupFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", common.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("%w: status %d", common.ErrLookupFailed, resp.StatusCode)
	}

	var body []lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("%w: %v", common.ErrLookupFailed, err)
	}
	if len(body) == 0 {
		return Address{}, fmt.Errorf("%w: empty response", common.ErrLookupFailed)
	}
	if body[0].Status != "Success" || len(body[0].PostOffice) == 0 {
		return Address{}, common.ErrPincodeNotFound
	}

	po := body[0].PostOffice[0]
	return Address{PostOffice: po.Name, District: po.District, State: po.State}, nil
}

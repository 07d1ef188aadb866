package v1

import (
	"encoding/json"
	"fmt"
	"sync"
)

// KimbalClient wraps the Kimbal factory-management API: authentication,
// the client (customer) list, and MO numbers per client. MO lists are
// cached in-memory for the life of the client, keyed by client id; the
// factory side owns this data, we only read it.
type KimbalClient struct {
	Transport *Transport

	mu      sync.Mutex
	moCache map[int][]MONumberDTO
}

func NewKimbalClient(baseURL, tenantID string) *KimbalClient {
	return &KimbalClient{
		Transport: NewTransport(baseURL, tenantID),
		moCache:   make(map[int][]MONumberDTO),
	}
}

type authenticateRequest struct {
	UserNameOrEmailAddress string `json:"userNameOrEmailAddress"`
	Password               string `json:"password"`
	RememberClient         bool   `json:"rememberClient"`
}

type authenticateResult struct {
	Result struct {
		AccessToken string `json:"accessToken"`
		ExpireIn    int    `json:"expireInSeconds"`
	} `json:"result"`
}

// ClientDTO is one factory customer.
type ClientDTO struct {
	ID         int    `json:"id"`
	ClientName string `json:"client_Name"`
}

// MONumberDTO is one manufacturing-order number belonging to a client.
type MONumberDTO struct {
	MONumber string `json:"moNumber"`
}

type clientListResult struct {
	Result struct {
		Items []ClientDTO `json:"items"`
	} `json:"result"`
}

// Authenticate logs in with the server-side credentials and stores the
// access token on the transport for subsequent calls.
func (c *KimbalClient) Authenticate(user, password string) (string, error) {
	resp, err := c.Transport.Post("/api/TokenAuth/Authenticate", authenticateRequest{
		UserNameOrEmailAddress: user,
		Password:               password,
		RememberClient:         false,
	}, nil)
	if err != nil {
		return "", err
	}

	var result authenticateResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", err
	}
	if result.Result.AccessToken == "" {
		return "", fmt.Errorf("authenticate: no access token in response")
	}

	c.Transport.AuthToken = result.Result.AccessToken
	return result.Result.AccessToken, nil
}

// GetAllClients fetches the factory's customer list.
func (c *KimbalClient) GetAllClients() ([]ClientDTO, error) {
	resp, err := c.Transport.Get("/client/api/v1/Client/GetAll", nil)
	if err != nil {
		return nil, err
	}

	var result clientListResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Result.Items, nil
}

// GetMONumbersByClient fetches the MO numbers offered for a customer,
// serving repeats from the cache. Customer selection during submit narrows
// the MO choices to this list.
func (c *KimbalClient) GetMONumbersByClient(clientID int) ([]MONumberDTO, error) {
	c.mu.Lock()
	if cached, ok := c.moCache[clientID]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	resp, err := c.Transport.Get("/meterreport/api/v1/MeterReportService/GetMONumbersByClient",
		map[string]string{"Id": fmt.Sprintf("%d", clientID)})
	if err != nil {
		return nil, err
	}

	items, err := decodeMONumbers(resp.Data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.moCache[clientID] = items
	c.mu.Unlock()
	return items, nil
}

// decodeMONumbers accepts both response shapes the factory API returns:
// {"result":{"items":[...]}} and {"result":[...]}.
func decodeMONumbers(data []byte) ([]MONumberDTO, error) {
	var wrapped struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped.Result) == 0 {
		return nil, nil
	}

	var withItems struct {
		Items []MONumberDTO `json:"items"`
	}
	if err := json.Unmarshal(wrapped.Result, &withItems); err == nil && withItems.Items != nil {
		return withItems.Items, nil
	}

	var plain []MONumberDTO
	if err := json.Unmarshal(wrapped.Result, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

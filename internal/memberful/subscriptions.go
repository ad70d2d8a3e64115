package memberful

import (
	"context"
	"encoding/json"
	"fmt"
)

type Coupon struct {
	Code string `json:"code"`
}

type Order struct {
	// CreatedAt is a unix timestamp.
	CreatedAt int64   `json:"createdAt"`
	Coupon    *Coupon `json:"coupon"`
}

// CouponCode returns the code of the coupon used for the order, "" if none.
func (o Order) CouponCode() string {
	if o.Coupon == nil {
		return ""
	}
	return o.Coupon.Code
}

type Member struct {
	ID               string   `json:"id"`
	DiscordUserID    string   `json:"discordUserId"`
	Email            string   `json:"email"`
	FullName         string   `json:"fullName"`
	StripeCustomerID string   `json:"stripeCustomerId"`
	Metadata         Metadata `json:"metadata"`
}

// Metadata is the free-form member metadata, Memberful sends it either as a
// JSON object or as a string containing one.
type Metadata map[string]any

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		if encoded == "" {
			*m = nil
			return nil
		}
		data = []byte(encoded)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("member metadata: %w", err)
	}
	*m = values
	return nil
}

// MetadataString returns a metadata value if it is a non-empty string.
func (m Member) MetadataString(key string) string {
	value, ok := m.Metadata[key].(string)
	if !ok {
		return ""
	}
	return value
}

type Subscription struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	// CreatedAt and ExpiresAt are unix timestamps.
	CreatedAt int64   `json:"createdAt"`
	ExpiresAt int64   `json:"expiresAt"`
	PastDue   bool    `json:"pastDue"`
	Coupon    *Coupon `json:"coupon"`
	Orders    []Order `json:"orders"`
	Member    Member  `json:"member"`
}

// CouponCode returns the code of the subscription level coupon, "" if none.
func (s Subscription) CouponCode() string {
	if s.Coupon == nil {
		return ""
	}
	return s.Coupon.Code
}

const subscriptionsQuery = `query getSubscriptions($cursor: String!) {
  subscriptions(after: $cursor) {
    totalCount
    pageInfo {
      endCursor
      hasNextPage
    }
    edges {
      node {
        id
        active
        createdAt
        expiresAt
        pastDue
        coupon {
          code
        }
        orders {
          createdAt
          coupon {
            code
          }
        }
        member {
          discordUserId
          email
          fullName
          id
          metadata
          stripeCustomerId
        }
      }
    }
  }
}`

type subscriptionsVariables struct {
	Cursor string `json:"cursor"`
}

type subscriptionsResult struct {
	Subscriptions struct {
		TotalCount int      `json:"totalCount"`
		PageInfo   PageInfo `json:"pageInfo"`
		Edges      []struct {
			Node Subscription `json:"node"`
		} `json:"edges"`
	} `json:"subscriptions"`
}

// FetchSubscriptionsPage fetches the page of subscriptions after the given cursor.
func (c *Client) FetchSubscriptionsPage(ctx context.Context, cursor string) (Page[Subscription], error) {
	result, err := graphqlQuery[subscriptionsResult](
		ctx, c, "getSubscriptions", subscriptionsQuery,
		subscriptionsVariables{Cursor: cursor},
	)
	if err != nil {
		return Page[Subscription]{}, err
	}

	conn := result.Subscriptions
	items := make([]Subscription, len(conn.Edges))
	for i, edge := range conn.Edges {
		items[i] = edge.Node
	}
	c.tel.ReportDebug("subscriptions page", cursor, len(items), conn.TotalCount)

	return Page[Subscription]{
		Items:      items,
		TotalCount: conn.TotalCount,
		PageInfo:   conn.PageInfo,
	}, nil
}

// Subscriptions returns a lazy iterator over every subscription page.
func (c *Client) Subscriptions() *Iterator[Subscription] {
	return NewIterator(c.FetchSubscriptionsPage)
}

const changeExpirationMutation = `mutation changeExpiration($id: ID!, $expiresAt: Int!) {
  subscriptionChangeExpirationTime(id: $id, expiresAt: $expiresAt) {
    subscription {
      id
      expiresAt
    }
  }
}`

type changeExpirationVariables struct {
	ID        string `json:"id"`
	ExpiresAt int64  `json:"expiresAt"`
}

type changeExpirationResult struct {
	SubscriptionChangeExpirationTime struct {
		Subscription struct {
			ID        string `json:"id"`
			ExpiresAt int64  `json:"expiresAt"`
		} `json:"subscription"`
	} `json:"subscriptionChangeExpirationTime"`
}

// ChangeSubscriptionExpiration moves the expiration of a subscription to the
// given unix timestamp and returns the expiration Memberful reports back.
func (c *Client) ChangeSubscriptionExpiration(ctx context.Context, id string, expiresAt int64) (int64, error) {
	result, err := graphqlQuery[changeExpirationResult](
		ctx, c, "changeExpiration", changeExpirationMutation,
		changeExpirationVariables{ID: id, ExpiresAt: expiresAt},
	)
	if err != nil {
		return 0, err
	}
	sub := result.SubscriptionChangeExpirationTime.Subscription
	if sub.ID == "" {
		return 0, fmt.Errorf("memberful: subscription %s not updated", id)
	}
	return sub.ExpiresAt, nil
}

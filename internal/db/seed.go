package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns, URLs and child campaigns. Campaigns are
// created idle with traffic control enabled so the controller picks them up
// on its next tick. The random source is injectable for reproducible data.
func Seed(ctx context.Context, pool *pgxpool.Pool, r *rand.Rand) error {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return pgx.BeginTxFunc(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for i := 1; i <= 3; i++ {
			var campaignID int64
			err := tx.QueryRow(ctx, `INSERT INTO campaigns
    (name, external_campaign_id, traffic_control_enabled, state, price_per_thousand_clicks,
     post_pause_check_minutes, high_spend_wait_minutes)
VALUES ($1, $2, TRUE, 'idle', $3, $4, $5) RETURNING id`,
				fmt.Sprintf("Campaign %d", i),
				fmt.Sprintf("%d", 990000+i),
				fmt.Sprintf("%d.%04d", 1+r.Intn(4), r.Intn(10000)),
				1+r.Intn(5),
				5+r.Intn(10),
			).Scan(&campaignID)
			if err != nil {
				return err
			}

			for j := 1; j <= 5; j++ {
				limit := int64(1000 * (1 + r.Intn(20)))
				clicks := r.Int63n(limit)
				_, err = tx.Exec(ctx, `INSERT INTO urls (campaign_id, name, target_url, status, clicks, click_limit)
VALUES ($1, $2, $3, 'active', $4, $5)`,
					campaignID,
					fmt.Sprintf("url-%d-%d", i, j),
					fmt.Sprintf("https://example.com/landing/%s", uuid.NewString()),
					clicks,
					limit,
				)
				if err != nil {
					return err
				}
			}

			if i == 1 {
				for k, threshold := range []int64{2000, 8000, 20000} {
					_, err = tx.Exec(ctx, `INSERT INTO child_campaigns (parent_campaign_id, external_campaign_id, click_remaining_threshold)
VALUES ($1, $2, $3)`, campaignID, fmt.Sprintf("%d", 991000+k), threshold)
					if err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

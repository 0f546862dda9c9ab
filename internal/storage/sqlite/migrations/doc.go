// Package migrations embeds SQL migration scripts for the tower store.
package migrations

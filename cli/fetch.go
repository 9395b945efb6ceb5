package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mascanho/ruddit/enums"
	"github.com/mascanho/ruddit/exports"
	"github.com/mascanho/ruddit/matchers"
)

var (
	taggerOnce   sync.Once
	sharedTagger *matchers.LanguageTagger
)

// tagger builds the language detector once; loading the models is slow.
func tagger() *matchers.LanguageTagger {
	taggerOnce.Do(func() {
		sharedTagger = matchers.NewLanguageTagger()
	})
	return sharedTagger
}

func newFetchCmd(a *app) *cobra.Command {
	var sort string

	cmd := &cobra.Command{
		Use:   "fetch [subreddit]",
		Short: "Fetch posts and their comments from a subreddit into the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subreddit := a.cfg.Defaults.Subreddit
			if len(args) == 1 {
				subreddit = args[0]
			}
			if sort == "" {
				sort = a.cfg.Defaults.Sort
			}
			return a.fetch(cmd.Context(), subreddit, sort)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "listing sort: hot, new, top, rising")
	return cmd
}

func (a *app) fetch(ctx context.Context, subreddit, sortStr string) error {
	sort, err := enums.ParseSort(sortStr)
	if err != nil {
		return err
	}

	client, err := a.redditClient(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Fetching posts from r/%s (%s)...\n", subreddit, sort)
	posts, err := client.FetchSubreddit(ctx, subreddit, sort)
	if err != nil {
		return err
	}

	postRepo, err := a.postRepo()
	if err != nil {
		return err
	}
	inserted, err := postRepo.InsertPosts(posts)
	if err != nil {
		return err
	}
	fmt.Printf("Fetched %d posts, %d new\n", len(posts), inserted)

	commentRepo, err := a.commentRepo()
	if err != nil {
		return err
	}

	fmt.Println("Fetching comments for posts...")
	total := 0
	for _, post := range posts {
		comments, err := client.FetchComments(ctx, post.ID)
		if err != nil {
			a.logger.Warn("failed to fetch comments", "post_id", post.ID, "error", err)
			continue
		}
		n, err := commentRepo.InsertComments(comments)
		if err != nil {
			return err
		}
		total += n
	}
	fmt.Printf("Done. %d new comments saved to database.\n", total)

	return nil
}

func newSearchCmd(a *app) *cobra.Command {
	var sort string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Reddit sitewide and store the matching posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			parsed, err := enums.ParseSort(sort)
			if err != nil {
				return err
			}

			client, err := a.redditClient(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Searching for %q...\n", query)
			posts, err := client.Search(cmd.Context(), query, parsed)
			if err != nil {
				return err
			}

			filter := matchers.SubredditFilter{
				Include: a.cfg.Filters.Subreddits,
				Exclude: a.cfg.Filters.ExcludeSubreddits,
			}
			kept := posts[:0]
			for _, post := range posts {
				if filter.Matches(post.Subreddit) {
					kept = append(kept, post)
				}
			}
			if dropped := len(posts) - len(kept); dropped > 0 {
				a.logger.Debug("filtered posts by subreddit", "dropped", dropped)
			}
			posts = kept

			repo, err := a.postRepo()
			if err != nil {
				return err
			}
			inserted, err := repo.InsertPosts(posts)
			if err != nil {
				return err
			}
			fmt.Printf("Found %d posts, %d new saved to database\n", len(posts), inserted)
			return nil
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "relevance tag for stored posts: hot, new, top, rising")
	_ = cmd.MarkFlagRequired("sort")
	return cmd
}

func newCommentsCmd(a *app) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "comments <post-id>",
		Short: "Fetch, print and store the comments of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID := args[0]

			client, err := a.redditClient(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Fetching comments for post %s...\n", postID)
			comments, err := client.FetchComments(cmd.Context(), postID)
			if err != nil {
				return err
			}
			fmt.Printf("\nFound %d comments\n", len(comments))

			for i, comment := range comments {
				fmt.Printf("\nComment #%d\n", i+1)
				fmt.Printf("Subreddit: r/%s\n", comment.Subreddit)
				fmt.Printf("Post: %s\n", comment.PostTitle)
				fmt.Printf("Author: u/%s\n", comment.Author)
				fmt.Printf("Score: %d points\n", comment.Score)
				fmt.Printf("Posted: %s\n", comment.FormattedDate)
				fmt.Printf("Link: https://reddit.com%s\n", comment.Permalink)
				fmt.Printf("\n%s\n", strings.TrimSpace(comment.Body))
				fmt.Println(strings.Repeat("-", 80))
			}

			repo, err := a.commentRepo()
			if err != nil {
				return err
			}
			if _, err := repo.InsertComments(comments); err != nil {
				return err
			}
			fmt.Println("\nComments saved to database.")

			if export {
				dir, err := exports.ResolveDir(a.cfg.Exports.Dir)
				if err != nil {
					return err
				}
				path, err := exports.ExportComments(comments, postID, dir)
				if err != nil {
					return err
				}
				fmt.Printf("Comments exported to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "also export the comments to a spreadsheet")
	return cmd
}

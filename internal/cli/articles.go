package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/article"
	"github.com/SergeyParamoshkin/admin/internal/model"
)

func newArticlesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Manage articles",
	}

	cmd.AddCommand(
		a.articlesListCmd(),
		a.articleGetCmd(),
		a.articleToggleCmd(),
		a.articleDeleteCmd(),
		a.articleCreateCmd(),
		a.articleUpdateCmd(),
	)

	return cmd
}

func (a *app) articlesListCmd() *cobra.Command {
	var (
		params    client.ArticleListParams
		published string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			if published != "" {
				b, err := strconv.ParseBool(published)
				if err != nil {
					return fmt.Errorf("--published: %w", err)
				}
				params.Published = &b
			}

			resp, err := api.ListArticles(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("list articles: %w", err)
			}

			rows := make([][]string, 0, len(resp.Articles))
			for _, art := range model.ArticlesFromServer(resp.Articles) {
				rows = append(rows, []string{art.Title, art.Slug, art.Author, a.printer.Status(art.Status()), strings.Join(art.Tags, ", ")})
			}

			if err = a.printer.Table([]string{"Title", "Slug", "Author", "Status", "Tags"}, rows); err != nil {
				return err
			}
			a.printer.Info("page %d of %d, %d articles", resp.Page, resp.TotalPages, resp.Total)

			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number, starting at 1")
	f.IntVar(&params.Limit, "limit", article.DefaultPageSize, "articles per page")
	f.StringVar(&published, "published", "", "only published (true) or drafts (false)")
	f.StringVar(&params.Tag, "tag", "", "only articles with this tag")
	f.StringVar(&params.Author, "author", "", "only articles by this author")
	f.StringVar(&params.SearchTerm, "search", "", "search term")

	return cmd
}

func (a *app) articleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			found, err := api.GetArticle(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get article %s: %w", args[0], err)
			}

			art := model.ArticleFromServer(*found)
			p := a.printer
			p.Field("Title", art.Title)
			p.Field("Slug", art.Slug)
			p.Field("Author", art.Author)
			p.Field("Status", p.Status(art.Status()))
			p.Field("Tags", strings.Join(art.Tags, ", "))
			p.Field("Description", art.Description)
			p.Field("Image", art.ImageURL)
			p.Field("Meta title", art.SEO.MetaTitle)
			p.Field("Meta description", art.SEO.MetaDescription)
			p.Field("Meta keywords", strings.Join(art.SEO.MetaKeywords, ", "))

			return nil
		},
	}
}

func (a *app) articleToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <slug>",
		Short: "Publish a draft or unpublish a published article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			slug := args[0]
			found, err := api.GetArticle(cmd.Context(), slug)
			if err != nil {
				return fmt.Errorf("get article %s: %w", slug, err)
			}

			published := !found.Published
			updated, err := api.UpdateArticle(cmd.Context(), slug, client.UpdateArticleRequest{Published: &published})
			if err != nil {
				return failed(article.MsgToggleFailed, err)
			}

			a.printer.Success("%s is now %s", slug, model.ArticleFromServer(*updated).Status())

			return nil
		},
	}
}

func (a *app) articleDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			slug := args[0]
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("%s (%s)", article.MsgConfirm, slug))
				if err != nil {
					return err
				}
				if !ok {
					a.printer.Info("cancelled")

					return nil
				}
			}

			if err = api.DeleteArticle(cmd.Context(), slug); err != nil {
				return failed(article.MsgDeleteFailed, err)
			}

			a.printer.Success("deleted %s", slug)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (a *app) articleCreateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create an article from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			form, err := a.articleForm(cmd, file)
			if err != nil {
				return err
			}

			created, err := api.CreateArticle(cmd.Context(), form.CreateRequest(a.sanitizer))
			if err != nil {
				return failed(article.MsgSaveFailed, err)
			}

			a.printer.Success("created %s", created.Slug)

			return nil
		},
	}

	fileFlag(cmd, &file)

	return cmd
}

func (a *app) articleUpdateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <slug> -f <file>",
		Short: "Replace an article's fields from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.backend()
			if err != nil {
				return err
			}

			form, err := a.articleForm(cmd, file)
			if err != nil {
				return err
			}

			if _, err = api.UpdateArticle(cmd.Context(), args[0], form.UpdateRequest(a.sanitizer)); err != nil {
				return failed(article.MsgSaveFailed, err)
			}

			a.printer.Success("updated %s", args[0])

			return nil
		},
	}

	fileFlag(cmd, &file)

	return cmd
}

// articleForm reads and validates an article file. An empty slug is derived
// from the title, as the panel form does.
func (a *app) articleForm(cmd *cobra.Command, file string) (article.Form, error) {
	var form article.Form
	if err := readYAML(cmd, file, &form); err != nil {
		return form, err
	}

	form.Tags = article.SplitList(form.Tags...)
	form.DeriveSlug()

	if errs := a.validator.Validate(form); errs != nil {
		a.printer.ValidationErrors(errs)

		return form, fmt.Errorf("%s: %w", file, errs)
	}

	return form, nil
}

// Package graphql exposes the business operations through a single GraphQL
// endpoint. Resolvers are thin adapters: they read the resolved AuthContext
// from the request context and delegate to the services, which hold every
// authorization and validation rule.
package graphql

import (
	"fmt"
	"time"

	"blogql/internal/api/middleware"
	"blogql/internal/app/service"
	"blogql/internal/domain/model"

	"github.com/graphql-go/graphql"
)

type schemaBuilder struct {
	authService *service.AuthService
	postService *service.PostService
	userService *service.UserService

	userType      *graphql.Object
	postType      *graphql.Object
	loginDataType *graphql.Object
	postsPageType *graphql.Object
}

// NewSchema builds the executable schema over the given services.
func NewSchema(
	authService *service.AuthService,
	postService *service.PostService,
	userService *service.UserService,
) (graphql.Schema, error) {
	b := &schemaBuilder{
		authService: authService,
		postService: postService,
		userService: userService,
	}
	b.buildTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.rootQuery(),
		Mutation: b.rootMutation(),
	})
}

func (b *schemaBuilder) buildTypes() {
	b.postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: postField(func(p *model.Post) (interface{}, error) { return p.ID, nil }),
			},
			"title": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: postField(func(p *model.Post) (interface{}, error) { return p.Title, nil }),
			},
			"content": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: postField(func(p *model.Post) (interface{}, error) { return p.Content, nil }),
			},
			"imageUrl": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: postField(func(p *model.Post) (interface{}, error) { return p.ImageURL, nil }),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: postField(func(p *model.Post) (interface{}, error) {
					return p.CreatedAt.Format(time.RFC3339), nil
				}),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: postField(func(p *model.Post) (interface{}, error) {
					return p.UpdatedAt.Format(time.RFC3339), nil
				}),
			},
		},
	})

	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: userField(func(u *model.User) (interface{}, error) { return u.ID, nil }),
			},
			"name": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *model.User) (interface{}, error) { return u.Name, nil }),
			},
			"email": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *model.User) (interface{}, error) { return u.Email, nil }),
			},
			"status": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *model.User) (interface{}, error) { return u.Status, nil }),
			},
		},
	})

	// Post <-> User are mutually recursive; the cross fields come last.
	b.postType.AddFieldConfig("creator", &graphql.Field{
		Type: graphql.NewNonNull(b.userType),
		Resolve: postField(func(p *model.Post) (interface{}, error) {
			return p.Creator, nil
		}),
	})
	b.userType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
		Resolve: userField(func(u *model.User) (interface{}, error) {
			if u.Posts == nil {
				return []model.Post{}, nil
			}
			return u.Posts, nil
		}),
	})

	b.loginDataType = graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.postsPageType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PostsPage",
		Fields: graphql.Fields{
			"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType)))},
			"totalItems": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
}

var userInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserInputData",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var postInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PostInputData",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

func (b *schemaBuilder) rootQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(b.loginDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					return b.authService.Login(p.Context, email, password)
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(b.postsPageType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					return b.postService.List(p.Context, middleware.AuthFromContext(p.Context), page)
				},
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(b.postType),
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					postID, _ := p.Args["postId"].(string)
					return b.postService.Get(p.Context, middleware.AuthFromContext(p.Context), postID)
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.userService.Me(p.Context, middleware.AuthFromContext(p.Context))
				},
			},
		},
	})
}

func (b *schemaBuilder) rootMutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["userInput"].(map[string]interface{})
					req := service.SignupRequest{
						Email:    stringArg(input, "email"),
						Name:     stringArg(input, "name"),
						Password: stringArg(input, "password"),
					}
					return b.authService.Signup(p.Context, req)
				},
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(b.postType),
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.postService.Create(p.Context, middleware.AuthFromContext(p.Context), postInputArg(p))
				},
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(b.postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					postID := fmt.Sprintf("%v", p.Args["id"])
					return b.postService.Update(p.Context, middleware.AuthFromContext(p.Context), postID, postInputArg(p))
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					postID := fmt.Sprintf("%v", p.Args["id"])
					return b.postService.Delete(p.Context, middleware.AuthFromContext(p.Context), postID)
				},
			},
			"updateStatus": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status, _ := p.Args["status"].(string)
					return b.userService.UpdateStatus(p.Context, middleware.AuthFromContext(p.Context), status)
				},
			},
		},
	})
}

func postInputArg(p graphql.ResolveParams) service.PostInput {
	input, _ := p.Args["postInput"].(map[string]interface{})
	return service.PostInput{
		Title:    stringArg(input, "title"),
		Content:  stringArg(input, "content"),
		ImageURL: stringArg(input, "imageUrl"),
	}
}

func stringArg(input map[string]interface{}, key string) string {
	s, _ := input[key].(string)
	return s
}

// postField adapts a typed resolver to graphql-go's Source, which may hold
// either a value or a pointer depending on where the post came from.
func postField(fn func(*model.Post) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch src := p.Source.(type) {
		case *model.Post:
			return fn(src)
		case model.Post:
			return fn(&src)
		}
		return nil, fmt.Errorf("unexpected source type %T for Post field", p.Source)
	}
}

func userField(fn func(*model.User) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch src := p.Source.(type) {
		case *model.User:
			return fn(src)
		case model.User:
			return fn(&src)
		}
		return nil, fmt.Errorf("unexpected source type %T for User field", p.Source)
	}
}

// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixUpload is the suffix for upload routes.
	RouteSuffixUpload = "/upload"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteBlog is the blog route.
	RouteBlog = "/blog"
	// RouteFaq is the FAQ route.
	RouteFaq = "/faq"
	// RouteContact is the contact route.
	RouteContact = "/contact"

	// RoutePosts is the posts admin route.
	RoutePosts = "/posts"
	// RouteFaqs is the FAQs admin route.
	RouteFaqs = "/faqs"
	// RouteTeam is the team admin route.
	RouteTeam = "/team"
	// RouteContacts is the contact submissions admin route.
	RouteContacts = "/contacts"
	// RouteSettings is the settings admin route.
	RouteSettings = "/settings"

	// RoutePostsID is the posts ID route pattern.
	RoutePostsID = RoutePosts + RouteParamID
	// RouteFaqsID is the FAQs ID route pattern.
	RouteFaqsID = RouteFaqs + RouteParamID
	// RouteTeamID is the team ID route pattern.
	RouteTeamID = RouteTeam + RouteParamID
	// RouteContactsID is the contact submissions ID route pattern.
	RouteContactsID = RouteContacts + RouteParamID
)

const (
	redirectAdmin         = "/admin"
	redirectAdminLogin    = redirectAdmin + RouteLogin
	redirectAdminPosts    = redirectAdmin + RoutePosts
	redirectAdminPostsNew = redirectAdminPosts + RouteSuffixNew
	redirectAdminFaqs     = redirectAdmin + RouteFaqs
	redirectAdminFaqsNew  = redirectAdminFaqs + RouteSuffixNew
	redirectAdminTeam     = redirectAdmin + RouteTeam
	redirectAdminTeamNew  = redirectAdminTeam + RouteSuffixNew
	redirectAdminContacts = redirectAdmin + RouteContacts
	redirectAdminSettings = redirectAdmin + RouteSettings

	redirectAdminPostsID = redirectAdminPosts + "/%d"
	redirectAdminFaqsID  = redirectAdminFaqs + "/%d"
	redirectAdminTeamID  = redirectAdminTeam + "/%d"
)

// Admin list page sizes.
const (
	postsPerPage    = 20
	contactsPerPage = 25
	blogPerPage     = 10
)
